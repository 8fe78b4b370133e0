package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/RecoveryAshes/ema-blocklist/internal/models"
	"github.com/schollz/progressbar/v3"
)

// ReportFileName 运行报告文件名
const ReportFileName = "run_report.json"

// Reporter 运行报告生成器
type Reporter struct {
	reportDir string
}

// NewReporter 创建报告生成器
func NewReporter(reportDir string) *Reporter {
	return &Reporter{reportDir: reportDir}
}

// Save 写入运行报告, 返回报告路径
func (r *Reporter) Save(report *models.RunReport) (string, error) {
	if err := os.MkdirAll(r.reportDir, 0755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}

	data, err := report.ToJSON()
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	path := filepath.Join(r.reportDir, ReportFileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	Debugf("run report saved: %s", path)
	return path, nil
}

// NewProgressBar 创建进度条, 输出到w
func NewProgressBar(w io.Writer, max int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(max,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
