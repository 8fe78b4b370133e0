package core

import (
	"context"
	"errors"
	"os"

	"github.com/RecoveryAshes/ema-blocklist/internal/classifier"
	"github.com/RecoveryAshes/ema-blocklist/internal/fetcher"
	"github.com/RecoveryAshes/ema-blocklist/internal/models"
	"github.com/RecoveryAshes/ema-blocklist/internal/output"
	"github.com/RecoveryAshes/ema-blocklist/internal/utils"
)

// Pipeline 一次完整运行: 拉取 -> 清洗 -> 分类 -> 写入
// 各步骤顺序执行, 不做重试
type Pipeline struct {
	config *Config
	client *fetcher.Client
	writer *output.Writer
}

// NewPipeline 创建运行流程
func NewPipeline(cfg *Config, headers models.HeaderProvider) *Pipeline {
	client := fetcher.NewClient(cfg.Fetch.Endpoint,
		fetcher.WithCount(cfg.Fetch.Count),
		fetcher.WithTimeout(cfg.Fetch.Timeout),
		fetcher.WithHeaders(headers),
	)
	return &Pipeline{
		config: cfg,
		client: client,
		writer: output.NewWriter(cfg.Output.Dir),
	}
}

// Run 执行一次
// 拉取失败和"无内容"都只记录日志, 不作为错误返回; 只有写文件失败返回错误
func (p *Pipeline) Run(ctx context.Context) (*models.RunReport, error) {
	report := models.NewRunReport(p.config.Fetch.Endpoint)
	utils.Debugf("run %s started", report.RunID)

	urls := make(models.URLSet)
	res, err := p.client.Fetch(ctx)
	if err != nil {
		utils.Error(err, "failed to fetch blacklist")
		report.FetchError = err.Error()
	} else {
		urls = res.URLs
		report.Stats.Records = res.Records
		report.Stats.SkippedRecords = res.SkippedRecords
	}
	report.Stats.CandidateURLs = urls.Len()

	lists := p.classify(urls)
	report.Stats.IPs = lists.IPs.Len()
	report.Stats.FQDNURLs = lists.FQDNURLs.Len()
	report.Stats.FQDNs = lists.FQDNs.Len()
	report.Stats.Discarded = lists.Discarded

	files, err := p.writer.Write(lists)
	report.Files = append(report.Files, files...)
	switch {
	case errors.Is(err, output.ErrNoContent):
		report.NoContent = true
		err = nil
	case err != nil:
		utils.Error(err, "failed to write blocklists")
	}

	report.Finish()
	p.saveReport(report)
	return report, err
}

func (p *Pipeline) classify(urls models.URLSet) *models.Blocklists {
	if !p.config.Output.Progress || urls.Len() == 0 {
		return classifier.Classify(urls)
	}
	bar := utils.NewProgressBar(os.Stderr, urls.Len(), "classifying")
	defer bar.Finish()
	return classifier.Classify(urls, classifier.WithProgress(bar))
}

func (p *Pipeline) saveReport(report *models.RunReport) {
	if !p.config.Output.Report {
		return
	}
	path, err := utils.NewReporter(p.config.Output.ReportDir).Save(report)
	if err != nil {
		utils.Error(err, "failed to save run report")
		return
	}
	utils.Infof("run report written to %s", path)
}
