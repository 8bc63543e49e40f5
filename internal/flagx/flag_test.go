package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	clientFlags := []string{"-a", "-t", "-d", "-o", "-l"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "keeps owned flags with their values",
			args:    []string{"-a", "http://localhost:3000", "-c", "bngrc.json", "-l", "debug"},
			allowed: clientFlags,
			want:    []string{"-a", "http://localhost:3000", "-l", "debug"},
		},
		{
			name:    "equals form",
			args:    []string{"-t=45s", "-config=bngrc.json"},
			allowed: clientFlags,
			want:    []string{"-t=45s"},
		},
		{
			name:    "value starting with dash is not consumed",
			args:    []string{"-o", "-l", "warn"},
			allowed: clientFlags,
			want:    []string{"-o", "-l", "warn"},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-d"},
			allowed: clientFlags,
			want:    []string{"-d"},
		},
		{
			name:    "positional arguments dropped",
			args:    []string{"rubriques", "-a", "http://api", "extra"},
			allowed: clientFlags,
			want:    []string{"-a", "http://api"},
		},
		{
			name:    "repeated flag kept in order",
			args:    []string{"-o", "downloads", "-o", "/tmp/bngrc"},
			allowed: clientFlags,
			want:    []string{"-o", "downloads", "-o", "/tmp/bngrc"},
		},
		{
			name:    "nothing allowed",
			args:    []string{"-a", "http://api"},
			allowed: nil,
			want:    []string{},
		},
		{
			name:    "empty args",
			args:    nil,
			allowed: clientFlags,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short", []string{"-c", "/etc/bngrc.json"}, "/etc/bngrc.json"},
		{"long", []string{"-config", "bngrc.json"}, "bngrc.json"},
		{"double dash equals", []string{"-a", "http://api", "--config=local.json"}, "local.json"},
		{"absent", []string{"-a", "http://api", "-l", "debug"}, ""},
		{"last wins", []string{"-c", "one.json", "-config", "two.json"}, "two.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigPath(tt.args))
		})
	}
}
