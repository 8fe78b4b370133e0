package main

import (
	"sort"

	"github.com/RecoveryAshes/ema-blocklist/internal/core"
	"github.com/RecoveryAshes/ema-blocklist/internal/utils"
	"github.com/spf13/cobra"
)

// mergeFlags 只有显式设置的命令行参数覆盖配置文件
func mergeFlags(cmd *cobra.Command, cfg *core.Config) {
	flags := cmd.Flags()
	if flags.Changed("endpoint") {
		cfg.Fetch.Endpoint = endpoint
	}
	if flags.Changed("count") {
		cfg.Fetch.Count = count
	}
	if flags.Changed("timeout") {
		cfg.Fetch.Timeout = timeout
	}
	if flags.Changed("output") {
		cfg.Output.Dir = outputDir
	}
	if flags.Changed("progress") {
		cfg.Output.Progress = progress
	}
	if flags.Changed("report") {
		cfg.Output.Report = report
	}
}

// runValidateConfig 校验头部配置并打印合并结果(已脱敏)
// headers.yaml不存在时生成模板
func runValidateConfig(hm *core.HeaderManager) error {
	created, err := hm.ConfigLoader().EnsureConfigExists()
	if err != nil {
		return err
	}
	if created {
		utils.Infof("header template written to %s", hm.ConfigLoader().Path())
	}

	if err := hm.LoadConfig(); err != nil {
		return err
	}
	if err := hm.Validate(); err != nil {
		return err
	}

	safe := hm.GetSafeHeaders()
	names := make([]string, 0, len(safe))
	for name := range safe {
		names = append(names, name)
	}
	sort.Strings(names)

	utils.Infof("header configuration is valid (%d headers)", len(safe))
	for _, name := range names {
		utils.Infof("  %s: %s", name, safe[name])
	}
	return nil
}
