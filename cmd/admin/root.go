package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-gin-gorm-blog/internal/core/config"
	"go-gin-gorm-blog/internal/core/database"
	"go-gin-gorm-blog/internal/core/logger"
)

// app 子命令共享的运行时依赖，PersistentPreRunE 里装配
type app struct {
	configPath string

	cfg     *config.Config
	log     *zap.Logger
	cleanup func()
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "blog-admin",
		Short:         "Operational commands for the blog API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.log, a.cleanup = logger.New(cfg.Log.Level, cfg.Log.JSON)
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.cleanup != nil {
				a.cleanup()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default $CONFIG_PATH or ./configs/config.local.yaml)")

	root.AddCommand(newMigrateCmd(a), newSeedCmd(a), newUsersCmd(a))
	return root
}

// withDB 打开连接，跑完 fn 后关闭
func (a *app) withDB(fn func(db *gorm.DB) error) error {
	db, err := database.NewGorm(database.OptsFrom(a.cfg.DB, a.log))
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()
	return fn(db)
}
