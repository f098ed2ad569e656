package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"subforge/internal/config"
	"subforge/internal/logging"
	"subforge/internal/recognizer"
)

// appDeps are the collaborators tests replace.
type appDeps struct {
	newRecognizer func(cfg *config.Config) (recognizer.Recognizer, error)
}

func defaultDeps() appDeps {
	return appDeps{
		newRecognizer: func(cfg *config.Config) (recognizer.Recognizer, error) {
			return recognizer.New(cfg, nil)
		},
	}
}

type commandContext struct {
	configFlag *string
	deps       appDeps

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag *string, deps appDeps) *commandContext {
	if deps.newRecognizer == nil {
		deps.newRecognizer = defaultDeps().newRecognizer
	}
	return &commandContext{
		configFlag: configFlag,
		deps:       deps,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = fmt.Errorf("load config: %w", err)
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

// newLogger builds the run logger writing to out and the configured log
// file. The closer releases the log file.
func (c *commandContext) newLogger(out io.Writer, runID string) (*slog.Logger, io.Closer, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, closer, err := logging.NewFromConfig(cfg, out)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	if runID != "" {
		logger = logger.With(logging.String(logging.FieldRunID, runID))
	}
	return logger, closer, nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
