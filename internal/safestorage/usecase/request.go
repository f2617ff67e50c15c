package usecase

import (
	"fmt"

	validation "github.com/jellydator/validation"

	ssDomain "github.com/allisson/safestorage/internal/safestorage/domain"
	customValidation "github.com/allisson/safestorage/internal/validation"
)

// Accounts names the keychain entry holding the safe storage password.
// FallbackAccount is tried once when PrimaryAccount cannot be read.
type Accounts struct {
	Service         string
	PrimaryAccount  string
	FallbackAccount string
}

// Validate checks the keychain coordinates.
func (a Accounts) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Service, validation.Required, customValidation.NotBlank, customValidation.NoWhitespace),
		validation.Field(&a.PrimaryAccount, validation.Required, customValidation.NotBlank, customValidation.NoWhitespace),
		validation.Field(&a.FallbackAccount, validation.Required, customValidation.NotBlank, customValidation.NoWhitespace),
	)
}

// ResolveRequest describes one decryption run.
type ResolveRequest struct {
	Accounts
	Source ssDomain.BlobSource

	// RevealPassword copies the keychain password into the Resolution.
	RevealPassword bool
}

// Validate checks the request before any secret is touched. A literal
// envelope is not inspected here; the codec classifies its content.
func (r ResolveRequest) Validate() error {
	if err := r.Accounts.Validate(); err != nil {
		return wrapInvalidRequest(err)
	}

	err := validation.ValidateStruct(&r.Source,
		validation.Field(&r.Source.Kind,
			validation.Required,
			validation.In(ssDomain.BlobSourceLiteral, ssDomain.BlobSourceConfigFile),
		),
		validation.Field(&r.Source.Value,
			validation.When(r.Source.Kind == ssDomain.BlobSourceConfigFile, validation.Required, customValidation.NotBlank),
		),
	)
	return wrapInvalidRequest(err)
}

// EncryptRequest describes the creation of a new envelope.
type EncryptRequest struct {
	Accounts
	Plaintext string
	Policy    ssDomain.IVPolicy
}

// Validate checks the request before any secret is touched.
func (r EncryptRequest) Validate() error {
	if err := r.Accounts.Validate(); err != nil {
		return wrapInvalidRequest(err)
	}
	return wrapInvalidRequest(validation.ValidateStruct(&r,
		validation.Field(&r.Policy, validation.In(ssDomain.IVFixed, ssDomain.IVRandom)),
	))
}

func wrapInvalidRequest(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ssDomain.ErrInvalidRequest, err)
}
