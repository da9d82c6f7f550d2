package ctx

import (
	convCfg "github.com/sofmon/backoffice/lib/cfg"
)

type Environment string

const (
	EnvironmentProduction Environment = "production"

	configKeyEnvironment convCfg.ConfigKey = "environment"
)

func getEnv() Environment {
	envStr, err := convCfg.String(configKeyEnvironment)
	if err != nil || envStr == "" {
		// failed to get environment from config
		// it is safer to assuming 'production'
		return EnvironmentProduction
	}
	return Environment(envStr)
}

func (ctx Context) Environment() Environment {
	env, _ := ctx.Value(contextKeyEnv).(Environment)
	return env
}
