package settings

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FileProvider reads Settings from a configuration file. The format is
// chosen by extension: .hcl (and HCL's .json syntax) or .yaml/.yml.
//
// Example configuration (HCL):
//
//	commander {
//	  server_url = "https://commander.example.com"
//	  base_path  = "/srv/workspace"
//	  auth_url   = "https://sso.example.com"
//	  username   = "alice"
//	  timeout    = "30s"
//	}
//
// Example configuration (YAML):
//
//	commander:
//	  serverUrl: https://commander.example.com
//	  basePath: /srv/workspace
//	  timeout: 30s
type FileProvider struct {
	Path string

	// Fs defaults to the OS filesystem.
	Fs afero.Fs
}

type hclFile struct {
	Commander *hclSettings `hcl:"commander,block"`
}

type hclSettings struct {
	ServerURL string `hcl:"server_url,optional"`
	AuthURL   string `hcl:"auth_url,optional"`
	AuthToken string `hcl:"auth_token,optional"`
	BasePath  string `hcl:"base_path,optional"`
	Username  string `hcl:"username,optional"`
	Password  string `hcl:"password,optional"`
	Timeout   string `hcl:"timeout,optional"`
	TLSVerify *bool  `hcl:"tls_verify,optional"`
}

type yamlFile struct {
	Commander *Settings `yaml:"commander"`
}

// Load implements Provider.
func (p *FileProvider) Load(context.Context) (*Settings, error) {
	if p.Path == "" {
		return nil, fmt.Errorf("configuration file path is required")
	}

	fs := p.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	src, err := afero.ReadFile(fs, p.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(p.Path)); ext {
	case ".hcl", ".json":
		return decodeHCL(p.Path, src)
	case ".yaml", ".yml":
		return decodeYAML(src)
	default:
		return nil, fmt.Errorf("unsupported configuration file extension %q", ext)
	}
}

func decodeHCL(filename string, src []byte) (*Settings, error) {
	var f hclFile
	if err := hclsimple.Decode(filename, src, nil, &f); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}
	if f.Commander == nil {
		return &Settings{}, nil
	}

	c := f.Commander
	s := &Settings{
		ServerURL: c.ServerURL,
		AuthURL:   c.AuthURL,
		AuthToken: c.AuthToken,
		BasePath:  c.BasePath,
		Username:  c.Username,
		Password:  c.Password,
		TLSVerify: c.TLSVerify,
	}
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
		}
		s.Timeout = d
	}
	return s, nil
}

func decodeYAML(src []byte) (*Settings, error) {
	var f yamlFile
	if err := yaml.Unmarshal(src, &f); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}
	if f.Commander == nil {
		return &Settings{}, nil
	}
	return f.Commander, nil
}
