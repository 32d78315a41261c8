package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/urfave/cli/v2"
	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/core/account"
	"go.dedis.ch/catapult/core/network"
	"go.dedis.ch/catapult/core/txn/cosign"
	"go.dedis.ch/catapult/core/txn/mapping"
	"go.dedis.ch/catapult/core/txn/signing"
	"go.dedis.ch/catapult/crypto"
	"golang.org/x/xerrors"
)

const (
	profileFlag  = "profile"
	payloadFlag  = "payload"
	embeddedFlag = "embedded"
	jsonFlag     = "json"
	keyFlag      = "key"
	cosignerFlag = "cosigner"
	outFlag      = "out"
)

// newApp returns the application that writes its results to the writer.
func newApp(out io.Writer) *cli.App {
	payload := &cli.StringFlag{
		Name:     payloadFlag,
		Usage:    "hexadecimal payload of the transaction",
		Required: true,
	}

	key := &cli.StringFlag{
		Name:     keyFlag,
		Usage:    "hexadecimal private key of the signer",
		Required: true,
	}

	return &cli.App{
		Name:   "catapult",
		Usage:  "convert and sign transactions",
		Writer: out,
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:  profileFlag,
				Usage: "path to the YAML profile of the network",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "decode",
				Usage: "print the JSON document of a binary payload",
				Flags: []cli.Flag{
					payload,
					&cli.BoolFlag{
						Name:  embeddedFlag,
						Usage: "decode the payload as an embedded transaction",
					},
				},
				Action: decodeAction,
			},
			{
				Name:   "hash",
				Usage:  "print the transaction hash of a binary payload",
				Flags:  []cli.Flag{payload},
				Action: hashAction,
			},
			{
				Name:  "sign",
				Usage: "sign a JSON document and print the payload and its hash",
				Flags: []cli.Flag{
					&cli.PathFlag{
						Name:     jsonFlag,
						Usage:    "path to the JSON document",
						Required: true,
					},
					key,
					&cli.StringSliceFlag{
						Name:  cosignerFlag,
						Usage: "hexadecimal private key of a cosigner of the aggregate",
					},
				},
				Action: signAction,
			},
			{
				Name:   "cosign",
				Usage:  "print the cosignature of an aggregate payload",
				Flags:  []cli.Flag{payload, key},
				Action: cosignAction,
			},
			{
				Name:  "profile",
				Usage: "write a profile for a network",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "network",
						Usage:    "name of the network",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "generation-hash",
						Usage:    "hexadecimal generation hash of the network",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "schema",
						Usage: "sign schema",
						Value: crypto.SHA3.String(),
					},
					&cli.PathFlag{
						Name:     outFlag,
						Usage:    "path of the profile",
						Required: true,
					},
				},
				Action: profileAction,
			},
		},
	}
}

func decodeAction(c *cli.Context) error {
	profile, err := loadProfile(c, false)
	if err != nil {
		return err
	}

	tx, err := mapping.CreateFromPayload(c.String(payloadFlag), c.Bool(embeddedFlag), profile.SignSchema)
	if err != nil {
		return xerrors.Errorf("failed to decode: %v", err)
	}

	data, err := mapping.ToJSON(tx)
	if err != nil {
		return xerrors.Errorf("failed to encode: %v", err)
	}

	fmt.Fprintln(c.App.Writer, string(data))

	return nil
}

func hashAction(c *cli.Context) error {
	profile, err := loadProfile(c, true)
	if err != nil {
		return err
	}

	payload, err := hex.DecodeString(c.String(payloadFlag))
	if err != nil {
		return xerrors.Errorf("malformed payload: %v", err)
	}

	hash, err := signing.TransactionHash(payload, profile.GenerationHash)
	if err != nil {
		return xerrors.Errorf("failed to hash: %v", err)
	}

	fmt.Fprintln(c.App.Writer, hash.Hex())

	return nil
}

func signAction(c *cli.Context) error {
	profile, err := loadProfile(c, true)
	if err != nil {
		return err
	}

	doc, err := ioutil.ReadFile(c.Path(jsonFlag))
	if err != nil {
		return xerrors.Errorf("failed to read document: %v", err)
	}

	tx, err := mapping.CreateFromDTO(doc)
	if err != nil {
		return xerrors.Errorf("failed to decode: %v", err)
	}

	signer, err := account.NewAccount(c.String(keyFlag), profile.Network)
	if err != nil {
		return xerrors.Errorf("invalid key: %v", err)
	}

	keys := c.StringSlice(cosignerFlag)

	cosigners := make([]account.Account, len(keys))
	for i, key := range keys {
		cosigners[i], err = account.NewAccount(key, profile.Network)
		if err != nil {
			return xerrors.Errorf("invalid cosigner #%d: %v", i, err)
		}
	}

	if len(cosigners) > 0 {
		result, err := signing.SignWithCosignatories(tx, signer, cosigners, profile.GenerationHash, profile.SignSchema)
		if err != nil {
			return xerrors.Errorf("failed to sign: %v", err)
		}

		fmt.Fprintf(c.App.Writer, "payload: %s\nhash: %s\n", result.Payload, result.Hash)

		return nil
	}

	result, err := signing.Sign(tx, signer, profile.GenerationHash, profile.SignSchema)
	if err != nil {
		return xerrors.Errorf("failed to sign: %v", err)
	}

	fmt.Fprintf(c.App.Writer, "payload: %s\nhash: %s\n", result.Payload, result.Hash)

	return nil
}

func cosignAction(c *cli.Context) error {
	profile, err := loadProfile(c, true)
	if err != nil {
		return err
	}

	payload, err := hex.DecodeString(c.String(payloadFlag))
	if err != nil {
		return xerrors.Errorf("malformed payload: %v", err)
	}

	acc, err := account.NewAccount(c.String(keyFlag), profile.Network)
	if err != nil {
		return xerrors.Errorf("invalid key: %v", err)
	}

	cosig, err := cosign.SignPayload(acc, payload, profile.GenerationHash, profile.SignSchema)
	if err != nil {
		return xerrors.Errorf("failed to cosign: %v", err)
	}

	fmt.Fprintf(c.App.Writer, "parentHash: %s\nsignature: %s\nsignerPublicKey: %s\n",
		cosig.ParentHash, cosig.Signature, cosig.SignerPublicKey)

	return nil
}

func profileAction(c *cli.Context) error {
	net, err := network.ParseTypeName(c.String("network"))
	if err != nil {
		return xerrors.Errorf("invalid network: %v", err)
	}

	gen, err := network.ParseGenerationHash(c.String("generation-hash"))
	if err != nil {
		return xerrors.Errorf("invalid generation hash: %v", err)
	}

	schema, err := crypto.ParseSignSchema(c.String("schema"))
	if err != nil {
		return xerrors.Errorf("invalid schema: %v", err)
	}

	profile := network.Profile{
		Network:        net,
		GenerationHash: gen,
		SignSchema:     schema,
	}

	f, err := os.Create(c.Path(outFlag))
	if err != nil {
		return xerrors.Errorf("failed to create file: %v", err)
	}

	defer f.Close()

	err = profile.Write(f)
	if err != nil {
		return xerrors.Errorf("failed to write profile: %v", err)
	}

	return nil
}

// loadProfile returns the profile of the flag. When it is not required and
// missing, the default profile uses the current schema.
func loadProfile(c *cli.Context, required bool) (network.Profile, error) {
	path := c.Path(profileFlag)

	if path == "" {
		if required {
			return network.Profile{}, xerrors.Errorf("flag --%s is required", profileFlag)
		}

		return network.Profile{SignSchema: crypto.SHA3}, nil
	}

	profile, err := network.LoadProfile(path)
	if err != nil {
		return network.Profile{}, xerrors.Errorf("failed to load profile: %v", err)
	}

	catapult.Logger.Trace().
		Stringer("network", profile.Network).
		Stringer("schema", profile.SignSchema).
		Msg("profile loaded")

	return profile, nil
}
