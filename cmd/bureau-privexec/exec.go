// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/bureau-foundation/privexec/lib/argv"
	"github.com/bureau-foundation/privexec/lib/binhash"
	"github.com/bureau-foundation/privexec/lib/config"
	"github.com/bureau-foundation/privexec/lib/launch"
	"github.com/bureau-foundation/privexec/lib/logging"
	"github.com/bureau-foundation/privexec/lib/passwd"
	"github.com/bureau-foundation/privexec/lib/pidfile"
	"github.com/bureau-foundation/privexec/lib/privilege"
	"github.com/bureau-foundation/privexec/lib/process"
	"github.com/bureau-foundation/privexec/lib/record"
)

// launchPlan is everything exec needs, resolved before any state
// changes so a dry run and a real run see the same values.
type launchPlan struct {
	launch   config.LaunchConfig
	identity passwd.Identity
	uid      uint32
	gid      uint32
	vector   *argv.Vector
	environ  []string
}

func (a *app) execCmd(args []string) error {
	flagSet := pflag.NewFlagSet("exec", pflag.ContinueOnError)
	flagSet.SetOutput(a.stderr)
	configPath := flagSet.String("config", "", "path to config file (default: $"+config.EnvironmentVariable+")")
	uid := flagSet.Uint32("uid", 0, "account to become")
	gid := flagSet.Uint32("gid", 0, "group to become (default: the account's primary group)")
	chdirHome := flagSet.Bool("chdir-home", false, "start in the account's home directory instead of /")
	chroot := flagSet.String("chroot", "", "directory to chroot into before dropping privileges")
	dropPrivileges := flagSet.Bool("drop-privileges", true, "switch to --uid/--gid before exec")
	noNewPrivs := flagSet.Bool("no-new-privs", true, "set no_new_privs after dropping privileges")
	pidPath := flagSet.String("pidfile", "", "write the pid to this file before exec")
	recordPath := flagSet.String("record", "", "write a launch record to this file before exec")
	logLevel := flagSet.String("log-level", "", "debug, info, warn, or error")
	dryRun := flagSet.Bool("dry-run", false, "print the resolved launch and exit")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	if flagSet.Changed("uid") {
		cfg.Launch.UID = uid
	}
	if flagSet.Changed("gid") {
		cfg.Launch.GID = gid
	}
	if flagSet.Changed("chdir-home") {
		cfg.Launch.ChdirHome = *chdirHome
	}
	if flagSet.Changed("chroot") {
		cfg.Launch.Chroot = *chroot
	}
	if flagSet.Changed("drop-privileges") {
		cfg.Launch.DropPrivileges = *dropPrivileges
	}
	if flagSet.Changed("no-new-privs") {
		cfg.Launch.NoNewPrivs = *noNewPrivs
	}
	if flagSet.Changed("pidfile") {
		cfg.Launch.PIDFile = *pidPath
	}
	if flagSet.Changed("record") {
		cfg.Launch.Record = *recordPath
	}
	if flagSet.Changed("log-level") {
		cfg.Log.Level = *logLevel
	}
	if positional := flagSet.Args(); len(positional) > 0 {
		cfg.Launch.Command = positional[0]
		cfg.Launch.Args = strings.Join(positional[1:], " ")
	}

	// A launch with no command is a successful no-op. It needs no
	// account, so nothing beyond the config file itself is checked.
	if cfg.Launch.Command == "" {
		if *dryRun {
			fmt.Fprintln(a.stdout, "command: (none; exits successfully)")
			return nil
		}
		return process.Exit(0)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	level, _ := logging.ParseLevel(cfg.Log.Level)
	logger := logging.New(a.stderr, level).With("command", "exec")

	plan, err := a.planLaunch(cfg.Launch, logger)
	if err != nil {
		return err
	}
	if *dryRun {
		a.printPlan(plan)
		return nil
	}
	return a.executePlan(plan, logger)
}

// loadConfig reads path, or BUREAU_PRIVEXEC_CONFIG when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// planLaunch resolves the target account and argument vector without
// changing any process state.
func (a *app) planLaunch(launchConfig config.LaunchConfig, logger *slog.Logger) (*launchPlan, error) {
	uid := *launchConfig.UID
	sanitizer := &launch.Sanitizer{Resolver: a.resolver, Logger: logger}
	identity, environ, err := sanitizer.Preview(uid, launchConfig.ChdirHome)
	if err != nil {
		return nil, err
	}

	plan := &launchPlan{
		launch:   launchConfig,
		identity: identity,
		uid:      uid,
		gid:      identity.GID,
		environ:  environ,
	}
	if launchConfig.GID != nil {
		plan.gid = *launchConfig.GID
	}

	launcher := &launch.Launcher{Logger: logger}
	plan.vector, err = launcher.Prepare(launchConfig.Command, launchConfig.Args)
	if err != nil {
		return nil, err
	}
	return plan, nil
}

func (a *app) printPlan(plan *launchPlan) {
	fmt.Fprintf(a.stdout, "user:    %s (uid %d, gid %d)\n", plan.identity.Name, plan.uid, plan.gid)
	if plan.launch.Chroot != "" {
		fmt.Fprintf(a.stdout, "chroot:  %s\n", plan.launch.Chroot)
	}
	fmt.Fprintf(a.stdout, "drop:    %t (no_new_privs %t)\n", plan.launch.DropPrivileges, plan.launch.NoNewPrivs)
	directory := "/"
	if plan.launch.ChdirHome {
		directory = plan.identity.Home
	}
	fmt.Fprintf(a.stdout, "cwd:     %s\n", directory)
	fmt.Fprintf(a.stdout, "command: %s\n", plan.launch.Command)
	fmt.Fprintf(a.stdout, "argv:    %s\n", argv.Join(plan.vector.Args()))
	if plan.vector.Dropped() {
		fmt.Fprintf(a.stdout, "warning: arguments beyond %d dropped\n", plan.vector.Len())
	}
	fmt.Fprintln(a.stdout, "environment:")
	for _, entry := range plan.environ {
		fmt.Fprintf(a.stdout, "    %s\n", argv.Quote(entry))
	}
}

// executePlan performs the launch: pid file and launch record while
// still privileged and unconfined, then chroot, privilege drop,
// environment sanitization and exec. It returns only on failure.
func (a *app) executePlan(plan *launchPlan, logger *slog.Logger) error {
	settings := plan.launch

	if settings.PIDFile != "" {
		if exists, _ := pidfile.Exists(settings.PIDFile, os.O_RDONLY); exists {
			logger.Warn("replacing existing pid file", "path", settings.PIDFile)
		}
		if err := pidfile.WritePID(settings.PIDFile, a.pid()); err != nil {
			return err
		}
	}

	if settings.Record != "" {
		if err := record.Write(settings.Record, a.buildRecord(plan, logger)); err != nil {
			return process.Fatalf("WriteRecord", "%w", err)
		}
	}

	dropper := &privilege.Dropper{Calls: a.calls, RefuseRoot: true, NoNewPrivs: settings.NoNewPrivs}
	if settings.Chroot != "" {
		if err := dropper.Chroot(settings.Chroot); err != nil {
			return err
		}
	}
	if settings.DropPrivileges {
		if err := dropper.SetUIDGID(plan.uid, plan.gid); err != nil {
			return err
		}
	}

	// The account was resolved before any chroot; pin it so the
	// sanitizer does not consult the new root's passwd file.
	sanitizer := &launch.Sanitizer{
		Resolver:    passwd.Fixed{plan.uid: plan.identity},
		Environment: a.environment,
		Chdir:       a.chdir,
		Logger:      logger,
	}
	if _, err := sanitizer.Sanitize(plan.uid, settings.ChdirHome); err != nil {
		return err
	}

	logger.Info("launching",
		"path", settings.Command,
		"uid", plan.uid,
		"gid", plan.gid,
		"args", plan.vector.Len(),
	)
	launcher := &launch.Launcher{Execer: a.execer, Environ: a.environ, Logger: logger}
	return launcher.ExecVector(settings.Command, plan.vector)
}

func (a *app) buildRecord(plan *launchPlan, logger *slog.Logger) record.Record {
	directory := "/"
	if plan.launch.ChdirHome {
		directory = plan.identity.Home
	}
	entry := record.Record{
		Time:             a.clock.Now().Truncate(time.Second),
		PID:              a.pid(),
		UID:              plan.uid,
		GID:              plan.gid,
		User:             plan.identity.Name,
		Command:          plan.launch.Command,
		Argv:             plan.vector.Args(),
		ArgumentsDropped: plan.vector.Dropped(),
		EnvironmentKeys:  record.EnvironmentKeys(plan.environ),
		WorkingDirectory: directory,
	}

	binaryPath := plan.launch.Command
	if plan.launch.Chroot != "" {
		binaryPath = filepath.Join(plan.launch.Chroot, binaryPath)
	}
	digest, err := binhash.HashFile(binaryPath)
	if err != nil {
		logger.Warn("cannot hash target binary", "path", binaryPath, "error", err)
	} else {
		entry.BinaryDigest = binhash.FormatDigest(digest)
	}
	return entry
}
