package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RecoveryAshes/ema-blocklist/internal/core"
	"github.com/RecoveryAshes/ema-blocklist/internal/utils"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

// 命令行参数
var (
	// 全局参数
	configFile     string
	headersFile    string
	verbose        bool
	logLevel       string
	headers        []string
	validateConfig bool

	// 运行参数
	endpoint  string
	count     int
	timeout   time.Duration
	outputDir string
	progress  bool
	report    bool
)

var appConfig *core.Config

var rootCmd = &cobra.Command{
	Use:   "emablocklist",
	Short: "Build IP/URL/Pi-hole blocklists from the EMA fraud blacklist",
	Long: `emablocklist fetches the fraud blacklist published at
https://www.ema.com.ua/citizens/blacklist and writes three blocklists
to the output directory:

  urls.txt         URLs whose host is a registrable domain
  ips.txt          IPv4 addresses, sorted by address
  urls-pihole.txt  bare FQDNs, one per line

Version: ` + Version + `
Built:   ` + BuildTime,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := core.LoadConfig(configFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logConfig := cfg.LogConfig()
		if logLevel != "" {
			logConfig.Level = logLevel
		} else if verbose {
			logConfig.Level = "debug"
		}
		if err := utils.InitLogger(logConfig); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		appConfig = cfg
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		headerManager, err := core.NewHeaderManager(headersFile, headers)
		if err != nil {
			return fmt.Errorf("parse headers: %w", err)
		}

		if validateConfig {
			return runValidateConfig(headerManager)
		}

		mergeFlags(cmd, appConfig)
		if err := appConfig.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		// 头部错误属于配置错误, 在拉取前暴露
		if _, err := headerManager.GetHeaders(); err != nil {
			return fmt.Errorf("invalid headers: %w", err)
		}

		_, err = core.NewPipeline(appConfig, headerManager).Run(ctx)
		return err
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("emablocklist %s\n", Version)
		fmt.Printf("built: %s\n", BuildTime)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default: ./configs/config.yaml, ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&headersFile, "headers-file", "", "HTTP headers file (default: configs/headers.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().StringSliceVarP(&headers, "header", "H", []string{}, "extra request header 'Name: Value', repeatable")
	rootCmd.PersistentFlags().BoolVar(&validateConfig, "validate-config", false, "validate header configuration and exit")

	rootCmd.Flags().StringVar(&endpoint, "endpoint", "", "blacklist API endpoint")
	rootCmd.Flags().IntVar(&count, "count", 0, "value of the count query parameter")
	rootCmd.Flags().DurationVar(&timeout, "timeout", 0, "request timeout")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory")
	rootCmd.Flags().BoolVar(&progress, "progress", false, "show a progress bar while classifying")
	rootCmd.Flags().BoolVar(&report, "report", false, "write a JSON run report")

	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
