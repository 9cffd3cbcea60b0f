package utils

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// BindFlags binds every flag of the command to its viper counterpart so
// values can come from flags, config file or environment, in that order of
// precedence.
func BindFlags(cmd *cobra.Command, v *viper.Viper, envPrefix string) error {
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	var bindErr error
	cmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		name := f.Name
		if envPrefix != "" {
			name = envPrefix + "." + name
		}

		if err := v.BindPFlag(name, f); err != nil {
			bindErr = err
			return
		}

		if !f.Changed && v.IsSet(name) {
			if err := cmd.PersistentFlags().Set(f.Name, fmt.Sprintf("%v", v.Get(name))); err != nil {
				bindErr = err
			}
		}
	})

	return bindErr
}
