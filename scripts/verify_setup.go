package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/RecoveryAshes/ema-blocklist/internal/core"
	"github.com/RecoveryAshes/ema-blocklist/internal/fetcher"
)

func main() {
	fmt.Println("==============================================")
	fmt.Println("  emablocklist 环境验证")
	fmt.Println("==============================================")
	fmt.Println()

	allOK := true

	fmt.Printf("✅ Go版本: %s\n", runtime.Version())
	fmt.Printf("✅ 操作系统: %s/%s\n", runtime.GOOS, runtime.GOARCH)

	// 配置
	fmt.Println()
	fmt.Println("检查配置...")
	cfg, err := core.LoadConfig("")
	if err != nil {
		fmt.Printf("❌ 配置加载失败: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("❌ 配置无效: %v\n", err)
		allOK = false
	} else {
		fmt.Printf("✅ 接口地址: %s\n", cfg.Fetch.Endpoint)
	}

	hm, err := core.NewHeaderManager("", nil)
	if err == nil {
		_, err = hm.GetHeaders()
	}
	if err != nil {
		fmt.Printf("❌ HTTP头部配置无效: %v\n", err)
		allOK = false
	} else {
		fmt.Printf("✅ HTTP头部: %d个\n", len(hm.GetSafeHeaders()))
	}

	// 输出目录可写
	fmt.Println()
	fmt.Println("检查输出目录...")
	if err := checkWritable(cfg.Output.Dir); err != nil {
		fmt.Printf("❌ %s 不可写: %v\n", cfg.Output.Dir, err)
		allOK = false
	} else {
		fmt.Printf("✅ %s 可写\n", cfg.Output.Dir)
	}

	// 接口连通性, 只请求一条记录
	fmt.Println()
	fmt.Println("检查接口连通性...")
	client := fetcher.NewClient(cfg.Fetch.Endpoint,
		fetcher.WithCount(1),
		fetcher.WithTimeout(15*time.Second),
		fetcher.WithHeaders(hm),
	)
	if res, err := client.Fetch(context.Background()); err != nil {
		fmt.Printf("❌ 接口不可用: %v\n", err)
		allOK = false
	} else {
		fmt.Printf("✅ 接口可用, 返回%d条记录\n", res.Records)
	}

	fmt.Println()
	fmt.Println("==============================================")
	if allOK {
		fmt.Println("✅ 环境验证通过!")
		fmt.Println()
		fmt.Println("下一步:")
		fmt.Println("  1. 运行 'go build ./cmd/emablocklist' 构建项目")
		fmt.Println("  2. 运行 './emablocklist --help' 查看帮助")
		os.Exit(0)
	}
	fmt.Println("❌ 环境验证失败,请解决上述问题。")
	os.Exit(1)
}

// checkWritable 在目录中创建并删除临时文件
func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".verify-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(filepath.Clean(name))
}
