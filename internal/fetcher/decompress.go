package fetcher

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"fmt"
	"io"
	"strings"

	"github.com/andybalholm/brotli"
)

// decodeBody 按Content-Encoding包装响应体
// 手动设置Accept-Encoding后net/http不会自动解压, 这里支持 gzip, deflate, br
func decodeBody(contentEncoding string, body io.Reader) (io.ReadCloser, error) {
	switch strings.ToLower(strings.TrimSpace(contentEncoding)) {
	case "", "identity":
		return io.NopCloser(body), nil
	case "gzip", "x-gzip":
		r, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return r, nil
	case "deflate":
		return newDeflateReader(body)
	case "br":
		return io.NopCloser(brotli.NewReader(body)), nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", contentEncoding)
	}
}

// newDeflateReader deflate按RFC 9110是zlib格式, 部分服务器发送裸DEFLATE流
// 根据前两个字节的zlib头判断
func newDeflateReader(body io.Reader) (io.ReadCloser, error) {
	br := bufio.NewReader(body)
	header, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("deflate: %w", err)
	}

	if isZlibHeader(header) {
		r, err := zlib.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("deflate: %w", err)
		}
		return r, nil
	}
	return flate.NewReader(br), nil
}

// isZlibHeader CM=8, CINFO<=7, 且 (CMF<<8|FLG) 是31的倍数
func isZlibHeader(b []byte) bool {
	if len(b) < 2 {
		return false
	}
	cmf, flg := b[0], b[1]
	return cmf&0x0f == 8 && cmf>>4 <= 7 && (uint16(cmf)<<8|uint16(flg))%31 == 0
}
