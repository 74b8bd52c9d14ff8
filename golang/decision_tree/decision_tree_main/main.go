package main

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tarstars/binary_decision_tree/golang/decision_tree/dtl"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type TestConfig struct {
	Description            string `mapstructure:"description"`
	FileNameTestFeatures   string `mapstructure:"filename_test_features"`
	FileNameTestTarget     string `mapstructure:"filename_test_target"`
	FileNameTestPrediction string `mapstructure:"filename_test_prediction"`
}

type RunConfig struct {
	FileNameTrainFeatures string       `mapstructure:"filename_train_features"`
	FileNameTrainTarget   string       `mapstructure:"filename_train_target"`
	Criterion             string       `mapstructure:"criterion"`
	Classification        bool         `mapstructure:"classification"`
	Tests                 []TestConfig `mapstructure:"tests"`
	FigureType            string       `mapstructure:"figure_type"`
	FileNameGraph         string       `mapstructure:"filename_graph"`
	LogLevel              string       `mapstructure:"log_level"`
}

//loadConfig reads the run config file, flag values set on the command line take precedence.
func loadConfig(srcConfig string, flags *pflag.FlagSet) (config RunConfig, err error) {
	v := viper.New()
	v.SetDefault("criterion", "mse")
	v.SetDefault("figure_type", "svg")
	v.SetDefault("filename_graph", "tree.svg")
	v.SetDefault("log_level", "info")
	v.SetConfigFile(srcConfig)
	if err = v.ReadInConfig(); err != nil {
		return config, errors.Wrapf(err, "read config %s", srcConfig)
	}
	if f := flags.Lookup("log-level"); f != nil && f.Changed {
		v.Set("log_level", f.Value.String())
	}
	if err = v.Unmarshal(&config); err != nil {
		return config, errors.Wrapf(err, "decode config %s", srcConfig)
	}
	return config, nil
}

func newLogger(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrapf(err, "log level %q", level)
	}
	config := zap.NewProductionConfig()
	if atomicLevel.Level() == zapcore.DebugLevel {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = atomicLevel
	return config.Build()
}

//fitTree reads the train set and fits a tree on it.
func fitTree(config RunConfig, logger *zap.Logger) (*dtl.Tree, error) {
	criterion, err := dtl.CriterionByName(config.Criterion)
	if err != nil {
		return nil, err
	}

	logger.Info("load train", zap.String("features", config.FileNameTrainFeatures), zap.String("target", config.FileNameTrainTarget))
	table, err := dtl.ReadTable(config.FileNameTrainFeatures, config.FileNameTrainTarget)
	if err != nil {
		return nil, err
	}
	table.SetDescription("train")

	return dtl.FitWithParams(table, dtl.TreeParams{
		Criterion:      criterion,
		Classification: config.Classification,
		Logger:         logger,
	}), nil
}

//fitPredict fits a tree and writes predictions for every test set.
func fitPredict(config RunConfig, logger *zap.Logger) error {
	tree, err := fitTree(config, logger)
	if err != nil {
		return err
	}

	for _, testConfig := range config.Tests {
		features, err := dtl.ReadNpy(testConfig.FileNameTestFeatures)
		if err != nil {
			return err
		}
		if _, w := features.Dims(); w < requiredWidth(tree) {
			return errors.Wrapf(dtl.ErrFeatureIndexOutOfRange, "%s has %d columns, the tree uses %d", testConfig.FileNameTestFeatures, w, requiredWidth(tree))
		}

		prediction := tree.PredictValue(features)
		if testConfig.FileNameTestPrediction != "" {
			if err := dtl.WriteNpy(testConfig.FileNameTestPrediction, prediction); err != nil {
				return err
			}
		}

		if testConfig.FileNameTestTarget != "" {
			table, err := dtl.ReadTable(testConfig.FileNameTestFeatures, testConfig.FileNameTestTarget)
			if err != nil {
				return err
			}
			table.SetDescription(testConfig.Description)
			table.Evaluate(tree, logger)
		}
	}
	return nil
}

//requiredWidth returns the number of feature columns a vector needs for every path of the tree.
func requiredWidth(tree *dtl.Tree) (width int) {
	tree.Walk(func(node *dtl.Node, _ int) {
		if split, ok := node.Split(); ok && split.Column+1 > width {
			width = split.Column + 1
		}
	})
	return
}

func graph(config RunConfig, logger *zap.Logger) error {
	tree, err := fitTree(config, logger)
	if err != nil {
		return err
	}
	logger.Info("render tree", zap.String("file", config.FileNameGraph), zap.String("figure_type", config.FigureType))
	return tree.RenderTreeFilename(config.FigureType, config.FileNameGraph)
}

func describe(config RunConfig, logger *zap.Logger) error {
	tree, err := fitTree(config, logger)
	if err != nil {
		return err
	}
	fmt.Println(dtl.DescribeTree(tree))
	return nil
}

func main() {
	flags := pflag.CommandLine
	runMode := flags.String("mode", "fit_predict", "you can select either 'fit_predict', 'graph' or 'describe' modes")
	config := flags.String("config", "decision_tree_config.json", "a config file for the run of the program")
	flags.String("log-level", "info", "debug, info, warn or error")
	memprofile := flags.String("memprofile", "", "write memory profile to `file`")
	pflag.Parse()

	runConfig, err := loadConfig(*config, flags)
	dtl.HandleError(err)

	logger, err := newLogger(runConfig.LogLevel)
	dtl.HandleError(err)
	defer func() { _ = logger.Sync() }()

	run, ok := map[string]func(RunConfig, *zap.Logger) error{
		"fit_predict": fitPredict,
		"graph":       graph,
		"describe":    describe,
	}[*runMode]
	if !ok {
		logger.Fatal("unknown mode", zap.String("mode", *runMode))
	}
	if err := run(runConfig, logger); err != nil {
		logger.Fatal("run failed", zap.String("mode", *runMode), zap.Error(err))
	}

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		dtl.HandleError(err)
		defer func() { dtl.HandleError(f.Close()) }()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			logger.Fatal("could not write memory profile", zap.Error(err))
		}
	}
}
