package deploy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cjfuller/labdb-manager/internal/command"
	"github.com/cjfuller/labdb-manager/internal/config"
)

func TestApplicationCommands(t *testing.T) {
	server := config.Default().Server

	tests := []struct {
		name    string
		cmd     command.Command
		text    string
		display string
		confirm bool
		sudo    bool
	}{
		{name: "bundle install", cmd: BundleInstall(), text: "bundle install", display: "bundle install"},
		{name: "bundle update", cmd: BundleUpdate(), text: "bundle update", display: "bundle update", confirm: true},
		{name: "precompile", cmd: PrecompileAssets(), text: "bundle exec rake assets:precompile", display: "bundle exec rake assets:precompile"},
		{name: "production db", cmd: CreateProductionDB(), text: "RAILS_ENV=production bundle exec rake db:setup", display: "RAILS_ENV=production bundle exec rake db:setup"},
		{name: "restart", cmd: RestartServer(server), text: "supervisorctl restart labdb", display: "supervisorctl restart <program>", sudo: true},
		{name: "devserver", cmd: RunDevServer(server), text: "bundle exec puma --config config/puma.rb", display: "bundle exec puma --config <puma-config>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.text, tt.cmd.Text())
			assert.Equal(t, tt.display, tt.cmd.String())
			assert.Equal(t, tt.confirm, tt.cmd.Confirm)
			assert.Equal(t, tt.sudo, tt.cmd.RequiresSudo)
			assert.True(t, tt.cmd.HardFail)
		})
	}
}

func TestHook(t *testing.T) {
	t.Run("hard fail by default", func(t *testing.T) {
		cmd := Hook(0, config.Hook{Command: "echo done"})

		assert.Equal(t, "hook-1", cmd.Name)
		assert.Equal(t, "echo done", cmd.Text())
		assert.True(t, cmd.HardFail)
		assert.False(t, cmd.RequiresSudo)
	})

	t.Run("soft fail and sudo", func(t *testing.T) {
		cmd := Hook(2, config.Hook{Command: "curl -fsS https://example.org", SoftFail: true, Sudo: true})

		assert.Equal(t, "hook-3", cmd.Name)
		assert.False(t, cmd.HardFail)
		assert.True(t, cmd.RequiresSudo)
	})
}
