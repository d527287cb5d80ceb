// Copyright (C) 2025 SAGE-X Project
//
// This file is part of sage-msgsig-go.
//
// sage-msgsig-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// sage-msgsig-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with sage-msgsig-go.  If not, see <https://www.gnu.org/licenses/>.

// Package observability contains logging setup.
package observability

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sage-x-project/sage-msgsig-go/pkg/config"
)

// SetupLogger builds a zap.Logger from the provided configuration, sets it as
// the global logger, and redirects the stdlib log package. The caller should
// defer logger.Sync().
func SetupLogger(c config.LogConfig) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(ParseLevel(c.Level))

	encCfg := defaultEncoderConfig(c.Development)
	var encoder zapcore.Encoder
	if strings.ToLower(c.Format) == "json" {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	outputs := c.Outputs
	if len(outputs) == 0 {
		outputs = []string{"stderr"}
	}

	var cores []zapcore.Core
	for _, out := range outputs {
		ws, err := writerFor(out, c)
		if err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(encoder, ws, level))
	}

	core := zapcore.NewTee(cores...)
	opts := []zap.Option{
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
	}
	if c.Development {
		opts = append(opts, zap.Development())
	}

	logger := zap.New(core, opts...)
	zap.ReplaceGlobals(logger)
	// redirect stdlib log to zap at Info level
	_, _ = zap.RedirectStdLogAt(logger, zap.InfoLevel)
	return logger, nil
}

// ParseLevel maps debug, info, warn(ing) and error to zap levels. Anything
// else is info.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zap.DebugLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func writerFor(out string, c config.LogConfig) (zapcore.WriteSyncer, error) {
	switch strings.ToLower(out) {
	case "stdout":
		return zapcore.AddSync(os.Stdout), nil
	case "stderr":
		return zapcore.AddSync(os.Stderr), nil
	}

	// Treat as file path; use rotation only when enabled
	if c.Rotation.Enable {
		return zapcore.AddSync(&lumberjack.Logger{
			Filename:   chooseFilename(out, c),
			MaxSize:    max(c.Rotation.MaxSizeMB, 10),
			MaxBackups: max(c.Rotation.MaxBackups, 1),
			MaxAge:     max(c.Rotation.MaxAgeDays, 7),
			Compress:   c.Rotation.Compress,
		}), nil
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(out, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return zapcore.AddSync(f), nil
}

func defaultEncoderConfig(dev bool) zapcore.EncoderConfig {
	if dev {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		return cfg
	}
	return zap.NewProductionEncoderConfig()
}

// chooseFilename returns the output filename. If rotation is enabled and a
// filename is provided in rotation config, prefer it; otherwise use the `out`.
func chooseFilename(out string, c config.LogConfig) string {
	if c.Rotation.Enable && strings.TrimSpace(c.Rotation.Filename) != "" {
		return c.Rotation.Filename
	}
	return out
}
