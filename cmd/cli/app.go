package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oltcmd/oltcmd/internal/config"
	"github.com/oltcmd/oltcmd/internal/service"
	"github.com/oltcmd/oltcmd/pkg/logger"
)

type app struct {
	configPath string
	verbose    bool
	theme      string

	// clipboard 测试注入；为空时使用系统剪贴板
	clipboard service.Clipboard
	wb        *service.Workbench
	out       *renderer
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "oltcmd",
		Short:         "Gerador de comandos para OLTs ZTE e Huawei",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.open(cmd.Context(), cmd.OutOrStdout())
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "arquivo de configuração")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log detalhado")
	root.PersistentFlags().StringVar(&a.theme, "color", "", "paleta de saída: light | dark (padrão: preferências)")

	root.AddCommand(
		a.vendorsCommand(),
		a.treeCommand(),
		a.showCommand(),
		a.resolveCommand(),
		a.validateCommand(),
		a.searchCommand(),
		a.historyCommand(),
		a.favCommand(),
		a.catalogCommand(),
		a.convertCommand(),
		a.prefsCommand(),
	)
	return root
}

// open 加载配置并启动工作台（不监听目录文件）
func (a *app) open(ctx context.Context, w io.Writer) error {
	if a.wb != nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	cfg.Watch.Enabled = false
	logCfg := logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		FilePath:   cfg.Log.FilePath,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}
	if a.verbose {
		logCfg.Level = "debug"
	} else if logCfg.Output == "console" {
		logCfg.Level = "warn"
	}
	if err := logger.Init(logCfg); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	var opts []service.Option
	if a.clipboard != nil {
		opts = append(opts, service.WithClipboard(a.clipboard))
	}
	wb, err := service.NewWorkbench(cfg, opts...)
	if err != nil {
		return err
	}
	if err := wb.Start(ctx); err != nil {
		return err
	}
	a.wb = wb

	theme := a.theme
	if theme == "" {
		theme = wb.Preferences().Theme
	}
	a.out = newRenderer(w, theme)
	return nil
}

func (a *app) close() {
	if a.wb != nil {
		_ = a.wb.Stop()
		a.wb = nil
	}
}

// splitPath 路径可以逐级传参，也可以用 " > " 连接成一个参数
func splitPath(args []string) []string {
	if len(args) == 1 && strings.Contains(args[0], ">") {
		parts := strings.Split(args[0], ">")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return args
}

// parseAssignments 解析 k=v 形式的参数
func parseAssignments(items []string) (map[string]string, error) {
	out := make(map[string]string, len(items))
	for _, item := range items {
		k, v, ok := strings.Cut(item, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("parâmetro inválido %q, use nome=valor", item)
		}
		out[strings.TrimSpace(k)] = v
	}
	return out, nil
}
