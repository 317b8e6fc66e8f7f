package cli_test

import (
	"path/filepath"
	"testing"

	"github.com/calvinalkan/bills/internal/cli"
	"github.com/calvinalkan/bills/internal/config"
)

func Test_Help_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	for _, flag := range []string{"-h", "--help"} {
		t.Run(flag, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			stdout := c.MustRun(flag)

			cli.AssertContains(t, stdout, "Usage: bills [flags]")
			cli.AssertContains(t, stdout, "--print-config")
			cli.AssertContains(t, stdout, "--log-level")
			cli.AssertNotContains(t, stdout, "== Bill Manager ==")
		})
	}
}

func Test_Run_Fails_When_Invoked_With_Bad_Arguments(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		name       string
		args       []string
		wantStderr string
	}{
		{
			name:       "unknown flag",
			args:       []string{"--nope"},
			wantStderr: "unknown flag: --nope",
		},
		{
			name:       "positional argument",
			args:       []string{"add"},
			wantStderr: "unexpected arguments",
		},
		{
			name:       "invalid log level",
			args:       []string{"--log-level", "loud"},
			wantStderr: "invalid log level",
		},
		{
			name:       "missing explicit config",
			args:       []string{"-c", "/does/not/exist.json"},
			wantStderr: "config file not found",
		},
	} {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := cli.NewCLI(t)
			stderr := c.MustFail(tt.args...)

			cli.AssertContains(t, stderr, "error:")
			cli.AssertContains(t, stderr, tt.wantStderr)
		})
	}
}

func Test_Run_Fails_With_Invalid_Global_Config(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.WriteGlobalConfig(`{"amount_decimals": 42}`)

	stderr := c.MustFail()
	cli.AssertContains(t, stderr, "invalid amount_decimals")
}

func Test_Print_Config_Defaults_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("--print-config")

	cli.AssertContains(t, stdout, "log_level=warn")
	cli.AssertContains(t, stdout, "history_file="+filepath.Join(c.Dir, ".bills_history"))
	cli.AssertContains(t, stdout, "amount_decimals=2")
	cli.AssertContains(t, stdout, "(defaults only)")
}

func Test_Print_Config_Flag_Overrides_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	stdout := c.MustRun("--print-config", "--log-level=debug", "--history-file", "")

	cli.AssertContains(t, stdout, "log_level=debug")
	cli.AssertContains(t, stdout, "history_file=(disabled)")
}

func Test_Print_Config_Explicit_Config_Flag_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	global := c.WriteGlobalConfig(`{"amount_decimals": 3}`)
	path := c.WriteFile("custom.json", `{
		// comments are fine
		"log_level": "info",
	}`)

	stdout := c.MustRun("-c", path, "--print-config")

	cli.AssertContains(t, stdout, "log_level=info")
	cli.AssertContains(t, stdout, "amount_decimals=3")
	cli.AssertContains(t, stdout, "global_config="+global)
	cli.AssertContains(t, stdout, "explicit_config="+path)
}

func Test_Session_Is_Silent_On_Stderr_By_Default(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	_, stderr, code := c.RunWithInput("1\nRent\n1200\n9\n")

	if got, want := code, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d", got, want)
	}

	if stderr != "" {
		t.Errorf("stderr=%q, want empty", stderr)
	}
}

func Test_Debug_Logging_When_Enabled(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	_, stderr, code := c.RunWithInput("1\nRent\n1200\n3\nRent\n", "--log-level", "debug")

	if got, want := code, 0; got != want {
		t.Fatalf("exitCode=%d, want=%d, stderr=%s", got, want, stderr)
	}

	cli.AssertContains(t, stderr, "session started")
	cli.AssertContains(t, stderr, "bill added")
	cli.AssertContains(t, stderr, "name=Rent")
	cli.AssertContains(t, stderr, "amount=1200")
	cli.AssertContains(t, stderr, "bill removed")
	cli.AssertContains(t, stderr, "session ended")
	cli.AssertNotContains(t, stderr, "\x1b[")
}

func Test_Log_Level_From_Env_When_Invoked(t *testing.T) {
	t.Parallel()

	c := cli.NewCLI(t)
	c.Env[config.EnvLogLevel] = "debug"

	_, stderr, _ := c.RunWithInput("")

	cli.AssertContains(t, stderr, "session started")
}
