package config

import (
	"os"
)

// ServerlessConfig holds serverless-specific configuration
type ServerlessConfig struct {
	IsLambda     bool
	FunctionName string
	Region       string
	Stage        string
}

// LoadServerlessConfig reads the Lambda environment
func LoadServerlessConfig() *ServerlessConfig {
	return &ServerlessConfig{
		IsLambda:     isRunningInLambda(),
		FunctionName: os.Getenv("AWS_LAMBDA_FUNCTION_NAME"),
		Region:       os.Getenv("AWS_REGION"),
		Stage:        GetEnv("STAGE", "dev"),
	}
}

// isRunningInLambda detects if the application is running in AWS Lambda
func isRunningInLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

// GetDeploymentMode returns the current deployment mode
func (s *ServerlessConfig) GetDeploymentMode() string {
	if s.IsLambda {
		return "serverless"
	}
	return "server"
}

// AdaptConfigForServerless modifies configuration for serverless deployment
func AdaptConfigForServerless(serverless *ServerlessConfig, config *Config) *Config {
	if !serverless.IsLambda {
		return config
	}

	// CloudWatch ingests one JSON document per line, and the filesystem is read-only
	config.Log.Format = "json"
	config.Log.File = ""

	// The function name is the handler to run unless one is configured
	if config.HandlerName == "" {
		config.HandlerName = serverless.FunctionName
	}

	return config
}

// GetOptimizedConfig returns configuration adapted to the current deployment mode
func GetOptimizedConfig() (*Config, error) {
	config, err := Load()
	if err != nil {
		return nil, err
	}

	return AdaptConfigForServerless(LoadServerlessConfig(), config), nil
}
