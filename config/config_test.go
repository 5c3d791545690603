package config_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"

	"github.com/leftmike/txkv/config"
	"github.com/leftmike/txkv/flags"
)

type vars struct {
	store string
	level string
	cmds  []string
}

func newConfig(t *testing.T, args []string) (*config.Config, *vars) {
	t.Helper()

	v := &vars{
		store: "btree",
		level: "info",
	}
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringVar(&v.store, "store", v.store, "storage backend")
	fs.StringVar(&v.level, "log-level", v.level, "log level")
	fs.StringSliceVar(&v.cmds, "cmd", v.cmds, "command")

	c := config.NewConfig(flags.Default())
	c.Var("store", fs.Lookup("store"))
	c.Var("log-level", fs.Lookup("log-level"))
	c.Var("cmd", fs.Lookup("cmd"))

	err := fs.Parse(args)
	if err != nil {
		t.Fatalf("Parse(%v) failed with %s", args, err)
	}
	c.Visit(fs)
	return c, v
}

func TestDecode(t *testing.T) {
	cases := []struct {
		args  []string
		cfg   string
		fail  bool
		store string
		level string
		cmds  []string
		echo  bool
	}{
		{cfg: ``, store: "btree", level: "info"},
		{cfg: `store = "pebble"`, store: "pebble", level: "info"},
		{cfg: `store = "pebble"
log-level = "debug"`, store: "pebble", level: "debug"},
		{args: []string{"--store", "btree"}, cfg: `store = "pebble"`, store: "btree",
			level: "info"},
		{cfg: `echo = true`, store: "btree", level: "info", echo: true},
		{cfg: `ECHO = true`, store: "btree", level: "info", echo: true},
		{cfg: `cmd = ["SET a 1", "GET a"]`, store: "btree", level: "info",
			cmds: []string{"SET a 1", "GET a"}},
		{cfg: `echo = 1`, fail: true},
		{cfg: `unknown = "value"`, fail: true},
		{cfg: `store = { a = 1 }`, fail: true},
		{cfg: `store = "pebble`, fail: true},
	}

	for _, tc := range cases {
		c, v := newConfig(t, tc.args)
		err := c.Decode(tc.cfg)
		if tc.fail {
			if err == nil {
				t.Errorf("Decode(%q) did not fail", tc.cfg)
			}
			continue
		} else if err != nil {
			t.Errorf("Decode(%q) failed with %s", tc.cfg, err)
			continue
		}

		if v.store != tc.store {
			t.Errorf("Decode(%q): store got %s want %s", tc.cfg, v.store, tc.store)
		}
		if v.level != tc.level {
			t.Errorf("Decode(%q): log-level got %s want %s", tc.cfg, v.level, tc.level)
		}
		if len(v.cmds) != len(tc.cmds) {
			t.Errorf("Decode(%q): cmd got %v want %v", tc.cfg, v.cmds, tc.cmds)
		} else {
			for idx := range v.cmds {
				if v.cmds[idx] != tc.cmds[idx] {
					t.Errorf("Decode(%q): cmd got %v want %v", tc.cfg, v.cmds, tc.cmds)
					break
				}
			}
		}
		if c.Flags().GetFlag(flags.Echo) != tc.echo {
			t.Errorf("Decode(%q): echo got %v want %v", tc.cfg, !tc.echo, tc.echo)
		}
	}
}

func TestList(t *testing.T) {
	c, _ := newConfig(t, []string{"--log-level=warn"})
	err := c.Decode(`store = "pebble"
show_depth = false`)
	if err != nil {
		t.Fatalf("Decode() failed with %s", err)
	}

	type entry struct {
		name, by, val string
	}
	want := []entry{
		{"cmd", "default", "[]"},
		{"echo", "default", "false"},
		{"log-level", "flag", "warn"},
		{"show_depth", "config", "false"},
		{"store", "config", "pebble"},
	}

	var got []entry
	c.List(
		func(name, by, val string) {
			got = append(got, entry{name, by, val})
		})
	if len(got) != len(want) {
		t.Fatalf("List() got %v want %v", got, want)
	}
	for idx := range got {
		if got[idx] != want[idx] {
			t.Errorf("List()[%d] got %v want %v", idx, got[idx], want[idx])
		}
	}
}

func TestLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "txkv-config")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	c, v := newConfig(t, nil)
	err = c.Load(filepath.Join(dir, "missing.hcl"))
	if !os.IsNotExist(err) {
		t.Errorf("Load(missing.hcl) got %v want not exist", err)
	}

	filename := filepath.Join(dir, "txkv.hcl")
	err = ioutil.WriteFile(filename, []byte("# txkv\nstore = \"pebble\"\n"), 0666)
	if err != nil {
		t.Fatal(err)
	}
	err = c.Load(filename)
	if err != nil {
		t.Errorf("Load(txkv.hcl) failed with %s", err)
	} else if v.store != "pebble" {
		t.Errorf("Load(txkv.hcl): store got %s want pebble", v.store)
	}

	err = ioutil.WriteFile(filename, []byte("bogus = 1\n"), 0666)
	if err != nil {
		t.Fatal(err)
	}
	err = c.Load(filename)
	if err == nil {
		t.Errorf("Load(txkv.hcl) did not fail")
	}
}
