// Package workflow sequences the operator scenarios: each loads the ids an
// earlier scenario stored, submits one or more batches, verifies the result
// and stores what the next scenario needs.
package workflow

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/recrd-io/recrd-sdk-go/pkg/display"
	"github.com/recrd-io/recrd-sdk-go/pkg/idstore"
	"github.com/recrd-io/recrd-sdk-go/pkg/keys"
	"github.com/recrd-io/recrd-sdk-go/pkg/master"
	"github.com/recrd-io/recrd-sdk-go/pkg/profile"
	"github.com/recrd-io/recrd-sdk-go/pkg/receipt"
	"github.com/recrd-io/recrd-sdk-go/pkg/rpc"
	"github.com/recrd-io/recrd-sdk-go/pkg/shared"
	"github.com/recrd-io/recrd-sdk-go/pkg/sui"
	"github.com/rs/zerolog"
)

// Deps are the collaborators of a Runner.
type Deps struct {
	Config   shared.Config
	Executor sui.Executor
	Reader   sui.ObjectReader
	Store    *idstore.Store
	Operator keys.Signer
	// User is the end-user signer used for purchases; optional.
	User   keys.Signer
	Logger *zerolog.Logger
	// NewUserID generates user ids for bulk profile creation.
	NewUserID func() string
	// Addresses generates throwaway accounts for bulk authorization.
	Addresses func(size int) ([]keys.AddressEntry, error)
}

// Runner runs the scenarios against one deployment.
type Runner struct {
	config   shared.Config
	contract shared.Contract
	store    *idstore.Store
	operator keys.Signer
	user     keys.Signer
	logger   zerolog.Logger

	newUserID func() string
	addresses func(size int) ([]keys.AddressEntry, error)

	Profiles *profile.Client
	Masters  *master.Client
	Receipts *receipt.Client
	Displays *display.Client
}

func New(deps Deps) (*Runner, error) {
	if deps.Store == nil {
		return nil, errors.New("workflow requires an id store")
	}
	if deps.Operator == nil {
		return nil, errors.New("workflow requires an operator signer")
	}

	logger := zerolog.Nop()
	if deps.Logger != nil {
		logger = *deps.Logger
	}
	contract := deps.Config.Contract()

	profiles, err := profile.NewClient(profile.ClientConfig{
		Contract: contract, Executor: deps.Executor, Reader: deps.Reader, Signer: deps.Operator, Logger: &logger,
	})
	if err != nil {
		return nil, fmt.Errorf("profile client: %w", err)
	}
	masters, err := master.NewClient(master.ClientConfig{
		Contract: contract, Executor: deps.Executor, Reader: deps.Reader, Signer: deps.Operator, Logger: &logger,
	})
	if err != nil {
		return nil, fmt.Errorf("master client: %w", err)
	}
	receipts, err := receipt.NewClient(receipt.ClientConfig{
		Contract: contract, Executor: deps.Executor, Reader: deps.Reader, Signer: deps.Operator, Logger: &logger,
	})
	if err != nil {
		return nil, fmt.Errorf("receipt client: %w", err)
	}
	displays, err := display.NewClient(display.ClientConfig{
		Contract: contract, Executor: deps.Executor, Reader: deps.Reader, Signer: deps.Operator, Logger: &logger,
	})
	if err != nil {
		return nil, fmt.Errorf("display client: %w", err)
	}

	newUserID := deps.NewUserID
	if newUserID == nil {
		newUserID = uuid.NewString
	}
	addresses := deps.Addresses
	if addresses == nil {
		addresses = keys.GenerateAddresses
	}

	return &Runner{
		config:    deps.Config,
		contract:  contract,
		store:     deps.Store,
		operator:  deps.Operator,
		user:      deps.User,
		logger:    logger,
		newUserID: newUserID,
		addresses: addresses,
		Profiles:  profiles,
		Masters:   masters,
		Receipts:  receipts,
		Displays:  displays,
	}, nil
}

// Options select how Connect submits batches.
type Options struct {
	// DryRun prints every batch to Out instead of submitting it.
	DryRun bool
	// Simulate evaluates batches on the node without executing them.
	Simulate bool
	Out      io.Writer
	Logger   *zerolog.Logger
}

// Connect builds a Runner talking to the node named by config.
func Connect(config shared.Config, options Options) (*Runner, error) {
	operator, err := keys.ParsePrivateKey(config.OperatorKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", shared.EnvOperatorKey, err)
	}
	var user keys.Signer
	if config.UserKey != "" {
		user, err = keys.ParsePrivateKey(config.UserKey)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", shared.EnvUserKey, err)
		}
	}

	node, err := rpc.NewClient(rpc.Config{URL: config.NodeURL, Network: config.Network})
	if err != nil {
		return nil, err
	}

	var executor sui.Executor
	if options.DryRun {
		executor = &sui.PrintExecutor{Writer: options.Out}
	} else {
		executor, err = sui.NewExecutor(sui.ExecutorConfig{
			Node:     node,
			Logger:   options.Logger,
			Simulate: options.Simulate,
		})
		if err != nil {
			return nil, err
		}
	}

	return New(Deps{
		Config:   config,
		Executor: executor,
		Reader:   node,
		Store:    idstore.NewOS(config.StateDir),
		Operator: operator,
		User:     user,
		Logger:   options.Logger,
	})
}

// Operator returns the operator's address.
func (r *Runner) Operator() string {
	return r.operator.Address()
}

func (r *Runner) stored(name, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	id, err := r.store.Load(name)
	if err != nil {
		return "", fmt.Errorf("run the scenario that writes %s first: %w", name, err)
	}
	return id, nil
}
