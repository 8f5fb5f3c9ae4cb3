// Package deploy builds the application and database commands the
// workflows enqueue: dependency installs, asset builds, server control and
// backups.
package deploy

import (
	"fmt"

	"github.com/cjfuller/labdb-manager/internal/command"
	"github.com/cjfuller/labdb-manager/internal/config"
)

// BundleInstall installs the locked gem set without upgrading anything.
func BundleInstall() command.Command {
	return command.Static("bundle-install", "bundle install")
}

// BundleUpdate upgrades gems past the lock file, after confirmation.
func BundleUpdate() command.Command {
	return command.Static("bundle-update", "bundle update", command.NeedsConfirmation())
}

// PrecompileAssets builds the asset pipeline.
func PrecompileAssets() command.Command {
	return command.Static("precompile-assets", "bundle exec rake assets:precompile")
}

// CreateProductionDB sets up the production database.
func CreateProductionDB() command.Command {
	return command.Static("create-production-db", "RAILS_ENV=production bundle exec rake db:setup")
}

// RestartServer restarts the supervised application process.
func RestartServer(cfg config.Server) command.Command {
	return command.New("restart-server", func(a ...string) string {
		program := "<program>"
		if len(a) > 0 {
			program = a[0]
		}
		return "supervisorctl restart " + program
	}, command.WithArgs(cfg.Program), command.RequiresSudo())
}

// RunDevServer runs puma in the foreground.
func RunDevServer(cfg config.Server) command.Command {
	return command.New("run-devserver", func(a ...string) string {
		pumaConfig := "<puma-config>"
		if len(a) > 0 {
			pumaConfig = a[0]
		}
		return "bundle exec puma --config " + pumaConfig
	}, command.WithArgs(cfg.PumaConfig))
}

// Hook turns a configured hook into a command.
func Hook(index int, hook config.Hook) command.Command {
	var opts []command.Option
	if hook.SoftFail {
		opts = append(opts, command.SoftFail())
	}
	if hook.Sudo {
		opts = append(opts, command.RequiresSudo())
	}
	return command.Static(fmt.Sprintf("hook-%d", index+1), hook.Command, opts...)
}
