package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/allisson/safestorage/cmd/app/commands"
	"github.com/allisson/safestorage/internal/app"
	"github.com/allisson/safestorage/internal/config"
	ssUsecase "github.com/allisson/safestorage/internal/safestorage/usecase"
)

// newRootCommand builds the CLI. Running it without a subcommand decrypts.
func newRootCommand(version string) *cli.Command {
	return &cli.Command{
		Name:         "safestorage",
		Usage:        "Decrypt and create desktop safe storage encrypted keys",
		Version:      version,
		Flags:        rootFlags(),
		Action:       decryptAction,
		OnUsageError: usageError,
		Commands:     getCommands(),
	}
}

func getCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:         "decrypt",
			Usage:        "Decrypt the application's encrypted key (default action)",
			Action:       decryptAction,
			OnUsageError: usageError,
		},
		{
			Name:  "encrypt",
			Usage: "Encrypt a value under the safe storage password",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "plaintext",
					Usage: "Value to encrypt (read from stdin when omitted)",
				},
				&cli.BoolFlag{
					Name:  "random-iv",
					Usage: "Use a random inline IV (not readable by the upstream application)",
				},
			},
			Action:       encryptAction,
			OnUsageError: usageError,
		},
		{
			Name:         "derive-key",
			Usage:        "Print the AES key derived from the safe storage password",
			Action:       deriveKeyAction,
			OnUsageError: usageError,
		},
		{
			Name:  "store-password",
			Usage: "Write a safe storage password into the OS credential store",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "password",
					Usage: "Password to store (read from stdin when omitted)",
				},
			},
			Action:       storePasswordAction,
			OnUsageError: usageError,
		},
		{
			Name:  "seal-password",
			Usage: "Wrap a safe storage password with KMS_KEY_URI for the kms secret store",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "password",
					Usage: "Password to seal (read from stdin when omitted)",
				},
			},
			Action:       sealPasswordAction,
			OnUsageError: usageError,
		},
	}
}

func rootFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the application config.json",
		},
		&cli.StringFlag{
			Name:    "key",
			Aliases: []string{"k"},
			Usage:   "Hex encrypted key given directly instead of reading config.json",
		},
		&cli.BoolFlag{
			Name:    "print-key",
			Aliases: []string{"p"},
			Usage:   "Also print the safe storage password (use with caution)",
		},
		&cli.StringFlag{
			Name:  "framing",
			Usage: "Envelope framing: 'fixed' or 'random' (default from CIPHER_FRAMING)",
		},
		&cli.StringFlag{
			Name:  "service",
			Usage: "Keychain service name (default from SAFE_STORAGE_SERVICE)",
		},
		&cli.StringFlag{
			Name:  "account",
			Usage: "Keychain account tried first (default from SAFE_STORAGE_ACCOUNT)",
		},
		&cli.StringFlag{
			Name:  "fallback-account",
			Usage: "Keychain account tried second (default from SAFE_STORAGE_FALLBACK_ACCOUNT)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Value:   "text",
			Usage:   "Output format: 'text' or 'json'",
		},
	}
}

// usageError tags argument parsing failures so they exit with the usage code.
func usageError(ctx context.Context, cmd *cli.Command, err error, isSubcommand bool) error {
	return fmt.Errorf("%w: %v", commands.ErrUsage, err)
}

// withContainer loads and validates configuration, then runs fn with a
// container that is shut down afterwards.
func withContainer(cmd *cli.Command, fn func(cfg *config.Config, container *app.Container) error) error {
	if cmd.Args().Len() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", commands.ErrUsage, cmd.Args().First())
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	container := app.NewContainer(cfg)
	defer commands.CloseContainer(container, container.Logger())

	return fn(cfg, container)
}

// accountsFrom merges keychain flags over configuration.
func accountsFrom(cmd *cli.Command, cfg *config.Config) ssUsecase.Accounts {
	return ssUsecase.Accounts{
		Service:         firstNonEmpty(cmd.String("service"), cfg.SafeStorageService),
		PrimaryAccount:  firstNonEmpty(cmd.String("account"), cfg.SafeStorageAccount),
		FallbackAccount: firstNonEmpty(cmd.String("fallback-account"), cfg.SafeStorageFallbackAccount),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func decryptAction(ctx context.Context, cmd *cli.Command) error {
	return withContainer(cmd, func(cfg *config.Config, container *app.Container) error {
		resolver, err := resolverFor(container, cmd.String("framing"))
		if err != nil {
			return err
		}

		input := commands.DecryptInput{
			Accounts:     accountsFrom(cmd, cfg),
			EncryptedKey: cmd.String("key"),
			PrintKey:     cmd.Bool("print-key"),
			Format:       cmd.String("format"),
		}
		if input.EncryptedKey == "" {
			input.ConfigPath = firstNonEmpty(cmd.String("config"), cfg.ConfigPath)
			if input.ConfigPath == "" {
				input.ConfigPath, err = container.ConfigRepository().DefaultPath(cfg.AppName)
				if err != nil {
					return err
				}
			}
		}

		return commands.RunDecrypt(ctx, resolver, container.Logger(), commands.DefaultIO().Writer, input)
	})
}

func encryptAction(ctx context.Context, cmd *cli.Command) error {
	return withContainer(cmd, func(cfg *config.Config, container *app.Container) error {
		framing := cmd.String("framing")
		if cmd.Bool("random-iv") && framing == "" {
			framing = "random"
		}

		encrypter, err := encrypterFor(container, framing)
		if err != nil {
			return err
		}

		return commands.RunEncrypt(
			ctx,
			encrypter,
			container.Logger(),
			commands.DefaultIO(),
			accountsFrom(cmd, cfg),
			cmd.String("plaintext"),
			cmd.Bool("random-iv"),
			cmd.String("format"),
		)
	})
}

func deriveKeyAction(ctx context.Context, cmd *cli.Command) error {
	return withContainer(cmd, func(cfg *config.Config, container *app.Container) error {
		store, err := container.SecretStore()
		if err != nil {
			return err
		}

		return commands.RunDeriveKey(
			ctx,
			store,
			container.KeyDeriver(),
			container.Logger(),
			commands.DefaultIO().Writer,
			accountsFrom(cmd, cfg),
		)
	})
}

func storePasswordAction(ctx context.Context, cmd *cli.Command) error {
	return withContainer(cmd, func(cfg *config.Config, container *app.Container) error {
		accounts := accountsFrom(cmd, cfg)

		return commands.RunStorePassword(
			ctx,
			container.KeyringWriter(),
			container.Logger(),
			commands.DefaultIO(),
			accounts.Service,
			accounts.PrimaryAccount,
			cmd.String("password"),
		)
	})
}

func sealPasswordAction(ctx context.Context, cmd *cli.Command) error {
	return withContainer(cmd, func(cfg *config.Config, container *app.Container) error {
		sealer, err := container.KMSStore()
		if err != nil {
			return err
		}

		return commands.RunSealPassword(
			ctx,
			sealer,
			container.Logger(),
			commands.DefaultIO(),
			accountsFrom(cmd, cfg).PrimaryAccount,
			cmd.String("password"),
		)
	})
}

func resolverFor(container *app.Container, framing string) (ssUsecase.Resolver, error) {
	if framing == "" {
		return container.Resolver()
	}
	codec, err := container.CodecFor(framing)
	if err != nil {
		return nil, err
	}
	return container.NewResolver(codec)
}

func encrypterFor(container *app.Container, framing string) (ssUsecase.Encrypter, error) {
	if framing == "" {
		return container.Encrypter()
	}
	codec, err := container.CodecFor(framing)
	if err != nil {
		return nil, err
	}
	return container.NewEncrypter(codec)
}
