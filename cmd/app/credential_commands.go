package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/credguard/cmd/app/commands"
	"github.com/allisson/credguard/internal/app"
)

// withContainer runs fn with a container built from the environment and
// shuts it down afterwards, wiping the session key.
func withContainer(ctx context.Context, fn func(container *app.Container) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	container := app.NewContainer(cfg)
	defer func() { _ = container.Shutdown(ctx) }()

	return fn(container)
}

func getCredentialCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "encrypt",
			Usage: "Encrypt a value with the device-bound key",
			Flags: []cli.Flag{valueFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					protector, err := container.Protector()
					if err != nil {
						return err
					}
					return commands.RunEncrypt(
						ctx,
						protector,
						container.Logger(),
						commands.DefaultIO(),
						cmd.String("value"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "decrypt",
			Usage: "Decrypt a value encrypted on this device",
			Flags: []cli.Flag{valueFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					protector, err := container.Protector()
					if err != nil {
						return err
					}
					return commands.RunDecrypt(
						ctx,
						protector,
						container.Logger(),
						commands.DefaultIO(),
						cmd.String("value"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "is-encrypted",
			Usage: "Report whether a value is in the encrypted format",
			Flags: []cli.Flag{valueFlag(), formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					protector, err := container.Protector()
					if err != nil {
						return err
					}
					return commands.RunIsEncrypted(
						protector,
						commands.DefaultIO(),
						cmd.String("value"),
						cmd.String("format"),
					)
				})
			},
		},
		{
			Name:  "fingerprint-status",
			Usage: "Print a digest of the device fingerprint for drift diagnosis",
			Flags: []cli.Flag{formatFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					return commands.RunFingerprintStatus(
						ctx,
						container.DeviceInfo(),
						container.KeyCache(),
						commands.DefaultIO(),
						cmd.String("format"),
					)
				})
			},
		},
	}
}
