package config

import (
	"fmt"
	"io/ioutil"
	"sort"

	"github.com/hashicorp/hcl"
	"github.com/spf13/pflag"

	"github.com/leftmike/txkv/flags"
)

const (
	byDefault = "default"
	byConfig  = "config"
	byFlag    = "flag"
)

// Config binds the variables of an hcl config file to command line flags. A value from the
// config file only applies if the flag was not given on the command line. Names which are not
// flags must be one of the boolean session flags.
type Config struct {
	vars  map[string]*pflag.Flag
	used  map[string]struct{}
	vals  map[string]interface{}
	flgs  flags.Flags
	flgBy map[flags.Flag]string
}

func NewConfig(flgs flags.Flags) *Config {
	return &Config{
		vars:  map[string]*pflag.Flag{},
		used:  map[string]struct{}{},
		vals:  map[string]interface{}{},
		flgs:  flgs,
		flgBy: map[flags.Flag]string{},
	}
}

// Var makes the flag settable from the config file as name.
func (c *Config) Var(name string, flg *pflag.Flag) {
	if _, ok := c.vars[name]; ok {
		panic(fmt.Sprintf("config: variable redefined: %s", name))
	}
	if flg == nil {
		panic(fmt.Sprintf("config: variable %s: missing flag", name))
	}
	c.vars[name] = flg
}

// Visit records which flags of fs were set on the command line.
func (c *Config) Visit(fs *pflag.FlagSet) {
	fs.Visit(
		func(flg *pflag.Flag) {
			c.used[flg.Name] = struct{}{}
		})
}

func (c *Config) Flags() flags.Flags {
	return c.flgs
}

func (c *Config) Load(filename string) error {
	b, err := ioutil.ReadFile(filename)
	if err != nil {
		return err
	}
	err = c.Decode(string(b))
	if err != nil {
		return fmt.Errorf("config: %s: %s", filename, err)
	}
	return nil
}

func (c *Config) Decode(s string) error {
	var cfg map[string]interface{}
	err := hcl.Decode(&cfg, s)
	if err != nil {
		return err
	}

	for name, val := range cfg {
		if flg, ok := c.vars[name]; ok {
			c.vals[name] = val
			if _, ok := c.used[flg.Name]; ok {
				continue
			}
			err = setFlag(flg, val)
			if err != nil {
				return fmt.Errorf("%s: %s", name, err)
			}
		} else if f, ok := flags.LookupFlag(name); ok {
			b, ok := val.(bool)
			if !ok {
				return fmt.Errorf("%s: expected boolean value; got %v", name, val)
			}
			c.flgs.SetFlag(f, b)
			c.flgBy[f] = byConfig
		} else {
			return fmt.Errorf("%s is not a config variable", name)
		}
	}

	return nil
}

func setFlag(flg *pflag.Flag, val interface{}) error {
	switch val := val.(type) {
	case []interface{}:
		for _, v := range val {
			err := flg.Value.Set(fmt.Sprintf("%v", v))
			if err != nil {
				return err
			}
		}
		return nil
	case []map[string]interface{}, map[string]interface{}:
		return fmt.Errorf("expected a simple value; got %v", val)
	}
	return flg.Value.Set(fmt.Sprintf("%v", val))
}

// List calls fn for each variable and session flag in name order, along with where its value
// came from: default, config, or flag.
func (c *Config) List(fn func(name, by, val string)) {
	type entry struct {
		name, by, val string
	}
	var entries []entry

	for name, flg := range c.vars {
		by := byDefault
		if _, ok := c.used[flg.Name]; ok {
			by = byFlag
		} else if _, ok := c.vals[name]; ok {
			by = byConfig
		}
		entries = append(entries, entry{name, by, flg.Value.String()})
	}

	flags.ListFlags(
		func(nam string, f flags.Flag) {
			by, ok := c.flgBy[f]
			if !ok {
				by = byDefault
			}
			entries = append(entries, entry{nam, by, fmt.Sprintf("%v", c.flgs.GetFlag(f))})
		})

	sort.Slice(entries,
		func(i, j int) bool {
			return entries[i].name < entries[j].name
		})
	for _, e := range entries {
		fn(e.name, e.by, e.val)
	}
}
