package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/RecoveryAshes/ema-blocklist/internal/models"
	"github.com/RecoveryAshes/ema-blocklist/internal/utils"
)

// 输出文件名
const (
	URLsFile   = "urls.txt"
	IPsFile    = "ips.txt"
	PiholeFile = "urls-pihole.txt"
)

// ErrNoContent IP和非IP集合均为空, 未写入任何文件
var ErrNoContent = errors.New("no content available for blocklists")

// Writer 将分类结果写入三个文本文件
type Writer struct {
	dir string
}

// NewWriter 创建写入器, dir为空时写入当前目录
func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{dir: dir}
}

type blocklistFile struct {
	name  string
	kind  string
	lines []string
}

// Write 依次写入 urls.txt, ips.txt, urls-pihole.txt
// 行以 "\n" 连接, 最后一行后没有换行; 已存在的文件会被覆盖
func (w *Writer) Write(lists *models.Blocklists) ([]models.FileCount, error) {
	if lists.IsEmpty() {
		utils.Errorf("No content available for blocklists.")
		return nil, ErrNoContent
	}

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	files := []blocklistFile{
		{name: URLsFile, kind: "non-IPs", lines: lists.FQDNURLs.Sorted()},
		{name: IPsFile, kind: "IPs", lines: lists.IPs.SortedIPv4()},
		{name: PiholeFile, kind: "FQDNs", lines: lists.FQDNs.Sorted()},
	}

	written := make([]models.FileCount, 0, len(files))
	for _, f := range files {
		path := filepath.Join(w.dir, f.name)
		timestamp := utils.CurrentTimestamp()
		if err := os.WriteFile(path, []byte(strings.Join(f.lines, "\n")), 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", f.name, err)
		}
		utils.Infof("%d %s written to %s at %s", len(f.lines), f.kind, f.name, timestamp)
		written = append(written, models.FileCount{Name: f.name, Path: path, Count: len(f.lines)})
	}
	return written, nil
}
