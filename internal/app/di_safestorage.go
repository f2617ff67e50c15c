package app

import (
	"context"
	"fmt"

	ssDomain "github.com/allisson/safestorage/internal/safestorage/domain"
	ssRepository "github.com/allisson/safestorage/internal/safestorage/repository"
	ssService "github.com/allisson/safestorage/internal/safestorage/service"
	ssUsecase "github.com/allisson/safestorage/internal/safestorage/usecase"
	"github.com/allisson/safestorage/internal/secretstore"
)

// SecretStore returns the password store selected by SECRET_STORE,
// instrumented when metrics are enabled.
func (c *Container) SecretStore() (ssUsecase.SecretStore, error) {
	var err error
	c.secretStoreInit.Do(func() {
		c.secretStore, err = c.initSecretStore()
		if err != nil {
			c.initErrors["secretStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretStore"]; exists {
		return nil, storedErr
	}
	return c.secretStore, nil
}

// KeyringWriter returns the OS credential store writer.
func (c *Container) KeyringWriter() secretstore.Writer {
	c.keyringWriterInit.Do(func() {
		c.keyringWriter = secretstore.NewKeyringStore()
	})
	return c.keyringWriter
}

// KMSStore returns a KMS store bound to KMS_KEY_URI, used to seal new entries.
func (c *Container) KMSStore() (*secretstore.KMSStore, error) {
	var err error
	c.kmsStoreInit.Do(func() {
		c.kmsStore, err = c.initKMSStore()
		if err != nil {
			c.initErrors["kmsStore"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["kmsStore"]; exists {
		return nil, storedErr
	}
	return c.kmsStore, nil
}

// KeyDeriver returns the PBKDF2 key deriver.
func (c *Container) KeyDeriver() ssService.KeyDeriver {
	c.keyDeriverInit.Do(func() {
		c.keyDeriver = ssService.NewDefaultKeyDeriver()
	})
	return c.keyDeriver
}

// Codec returns the cipher codec for CIPHER_FRAMING.
func (c *Container) Codec() (ssService.Codec, error) {
	var err error
	c.codecInit.Do(func() {
		c.codec, err = c.initCodec(c.config.CipherFraming)
		if err != nil {
			c.initErrors["codec"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["codec"]; exists {
		return nil, storedErr
	}
	return c.codec, nil
}

// ConfigRepository returns the JSON configuration repository.
func (c *Container) ConfigRepository() *ssRepository.JSONConfigRepository {
	c.configRepoInit.Do(func() {
		c.configRepo = ssRepository.NewJSONConfigRepository()
	})
	return c.configRepo
}

// Resolver returns the resolve use case.
func (c *Container) Resolver() (ssUsecase.Resolver, error) {
	var err error
	c.resolverInit.Do(func() {
		c.resolver, err = c.initResolver()
		if err != nil {
			c.initErrors["resolver"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["resolver"]; exists {
		return nil, storedErr
	}
	return c.resolver, nil
}

// Encrypter returns the encrypt use case.
func (c *Container) Encrypter() (ssUsecase.Encrypter, error) {
	var err error
	c.encrypterInit.Do(func() {
		c.encrypter, err = c.initEncrypter()
		if err != nil {
			c.initErrors["encrypter"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["encrypter"]; exists {
		return nil, storedErr
	}
	return c.encrypter, nil
}

// CodecFor returns a codec for framing, or the configured codec when framing is empty.
func (c *Container) CodecFor(framing string) (ssService.Codec, error) {
	if framing == "" {
		return c.Codec()
	}
	return c.initCodec(framing)
}

// NewResolver builds a resolve use case around codec, sharing the container's
// other dependencies. Used when a command overrides the configured framing.
func (c *Container) NewResolver(codec ssService.Codec) (ssUsecase.Resolver, error) {
	store, err := c.SecretStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret store for resolver: %w", err)
	}

	useCase := ssUsecase.NewResolver(store, c.ConfigRepository(), c.KeyDeriver(), codec, c.Logger())
	return c.withResolverMetrics(useCase)
}

// NewEncrypter builds an encrypt use case around codec.
func (c *Container) NewEncrypter(codec ssService.Codec) (ssUsecase.Encrypter, error) {
	store, err := c.SecretStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret store for encrypter: %w", err)
	}

	useCase := ssUsecase.NewEncrypter(store, c.KeyDeriver(), codec, c.Logger())
	if !c.config.MetricsEnabled {
		return useCase, nil
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for encrypter: %w", err)
	}
	return ssUsecase.NewEncrypterWithMetrics(useCase, businessMetrics), nil
}

// initSecretStore builds the backend store and wraps it with metrics.
func (c *Container) initSecretStore() (ssUsecase.SecretStore, error) {
	store, err := secretstore.New(context.Background(), secretstore.Options{
		Backend:    secretstore.Backend(c.config.SecretStore),
		Service:    c.config.SafeStorageService,
		KMSKeyURI:  c.config.KMSKeyURI,
		KMSSecrets: c.config.KMSSecrets,
	}, c.KMSService())
	if err != nil {
		return nil, fmt.Errorf("failed to create secret store: %w", err)
	}

	if kmsStore, ok := store.(*secretstore.KMSStore); ok {
		c.mu.Lock()
		c.closers = append(c.closers, kmsStore)
		c.mu.Unlock()
	}

	if !c.config.MetricsEnabled {
		return store, nil
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for secret store: %w", err)
	}
	return secretstore.NewStoreWithMetrics(store, businessMetrics), nil
}

// initKMSStore opens the KMS keeper without any configured entries.
func (c *Container) initKMSStore() (*secretstore.KMSStore, error) {
	store, err := secretstore.NewKMSStore(
		context.Background(),
		c.KMSService(),
		c.config.KMSKeyURI,
		c.config.SafeStorageService,
		"",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create kms store: %w", err)
	}

	c.mu.Lock()
	c.closers = append(c.closers, store)
	c.mu.Unlock()

	return store, nil
}

// initCodec parses framing and builds the CBC codec.
func (c *Container) initCodec(framing string) (ssService.Codec, error) {
	parsed, err := ssDomain.ParseFraming(framing)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cipher framing %q: %w", framing, err)
	}
	codec, err := ssService.NewCBCCodec(parsed)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher codec: %w", err)
	}
	return codec, nil
}

// initResolver creates the resolve use case with the configured codec.
func (c *Container) initResolver() (ssUsecase.Resolver, error) {
	codec, err := c.Codec()
	if err != nil {
		return nil, fmt.Errorf("failed to get codec for resolver: %w", err)
	}
	return c.NewResolver(codec)
}

// initEncrypter creates the encrypt use case with the configured codec.
func (c *Container) initEncrypter() (ssUsecase.Encrypter, error) {
	codec, err := c.Codec()
	if err != nil {
		return nil, fmt.Errorf("failed to get codec for encrypter: %w", err)
	}
	return c.NewEncrypter(codec)
}

func (c *Container) withResolverMetrics(useCase ssUsecase.Resolver) (ssUsecase.Resolver, error) {
	if !c.config.MetricsEnabled {
		return useCase, nil
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for resolver: %w", err)
	}
	return ssUsecase.NewResolverWithMetrics(useCase, businessMetrics), nil
}
