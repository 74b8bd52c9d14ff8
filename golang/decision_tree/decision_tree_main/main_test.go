package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/tarstars/binary_decision_tree/golang/decision_tree/dtl"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	fileName := filepath.Join(dir, "config.json")
	if err := os.WriteFile(fileName, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return fileName
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	fileName := writeConfig(t, dir, `{
		"filename_train_features": "train_x.npy",
		"filename_train_target": "train_y.npy",
		"classification": true,
		"tests": [{"description": "holdout", "filename_test_features": "test_x.npy"}]
	}`)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "info", "")
	if err := flags.Parse([]string{"--log-level", "debug"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	config, err := loadConfig(fileName, flags)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if config.FileNameTrainFeatures != "train_x.npy" || !config.Classification {
		t.Errorf("unexpected config %+v", config)
	}
	if config.Criterion != "mse" || config.FigureType != "svg" {
		t.Errorf("defaults not applied: %+v", config)
	}
	if config.LogLevel != "debug" {
		t.Errorf("log level %q, want the flag value debug", config.LogLevel)
	}
	if len(config.Tests) != 1 || config.Tests[0].Description != "holdout" {
		t.Errorf("unexpected tests %+v", config.Tests)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), "absent.json"), pflag.NewFlagSet("test", pflag.ContinueOnError)); err == nil {
		t.Errorf("expected an error for a missing config")
	}
}

func TestFitPredict(t *testing.T) {
	dir := t.TempDir()
	path := func(name string) string { return filepath.Join(dir, name) }

	dtl.HandleError(dtl.WriteNpy(path("train_x.npy"), mat.NewDense(4, 2, []float64{1, 0, 2, 0, 3, 0, 4, 0})))
	dtl.HandleError(dtl.WriteNpy(path("train_y.npy"), []float64{0, 0, 10, 10}))
	dtl.HandleError(dtl.WriteNpy(path("test_x.npy"), mat.NewDense(3, 2, []float64{2, 5, 3, 5, 4, 5})))
	dtl.HandleError(dtl.WriteNpy(path("test_y.npy"), []float64{0, 10, 10}))

	config := RunConfig{
		FileNameTrainFeatures: path("train_x.npy"),
		FileNameTrainTarget:   path("train_y.npy"),
		Criterion:             "mse",
		Tests: []TestConfig{{
			Description:            "test",
			FileNameTestFeatures:   path("test_x.npy"),
			FileNameTestTarget:     path("test_y.npy"),
			FileNameTestPrediction: path("prediction.npy"),
		}},
	}
	if err := fitPredict(config, zap.NewNop()); err != nil {
		t.Fatalf("fit_predict: %v", err)
	}

	prediction, err := dtl.ReadNpy(path("prediction.npy"))
	if err != nil {
		t.Fatalf("read prediction: %v", err)
	}
	if !mat.Equal(prediction, mat.NewDense(3, 1, []float64{0, 10, 10})) {
		t.Errorf("prediction %v", mat.Formatted(prediction))
	}
}

func TestFitPredictRejectsNarrowTestSet(t *testing.T) {
	dir := t.TempDir()
	path := func(name string) string { return filepath.Join(dir, name) }

	dtl.HandleError(dtl.WriteNpy(path("train_x.npy"), mat.NewDense(4, 2, []float64{0, 1, 0, 2, 0, 3, 0, 4})))
	dtl.HandleError(dtl.WriteNpy(path("train_y.npy"), []float64{0, 0, 10, 10}))
	dtl.HandleError(dtl.WriteNpy(path("test_x.npy"), mat.NewDense(2, 1, []float64{1, 2})))

	config := RunConfig{
		FileNameTrainFeatures: path("train_x.npy"),
		FileNameTrainTarget:   path("train_y.npy"),
		Tests:                 []TestConfig{{FileNameTestFeatures: path("test_x.npy")}},
	}
	if err := fitPredict(config, zap.NewNop()); err == nil {
		t.Errorf("expected an error for a test set narrower than the tree")
	}
}

func TestNewLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		if _, err := newLogger(level); err != nil {
			t.Errorf("newLogger(%q): %v", level, err)
		}
	}
	if _, err := newLogger("loud"); err == nil {
		t.Errorf("expected an error for an unknown level")
	}
}
