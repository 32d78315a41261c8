package network

import (
	"io"
	"io/ioutil"
	"os"

	"go.dedis.ch/catapult"
	"go.dedis.ch/catapult/crypto"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

// Profile is the set of parameters of a network that a tool needs to build
// and sign transactions for it.
type Profile struct {
	Network        Type              `yaml:"network"`
	GenerationHash GenerationHash    `yaml:"generationHash"`
	SignSchema     crypto.SignSchema `yaml:"signSchema"`
}

// ReadProfile reads a YAML profile from the reader.
func ReadProfile(r io.Reader) (Profile, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return Profile{}, xerrors.Errorf("failed to read: %v", err)
	}

	var p Profile

	err = yaml.UnmarshalStrict(data, &p)
	if err != nil {
		return Profile{}, xerrors.Errorf("failed to unmarshal profile: %v: %w", err, catapult.ErrInvalidIdentifier)
	}

	if p.Network == 0 {
		return Profile{}, xerrors.Errorf("missing network: %w", catapult.ErrInvalidIdentifier)
	}

	return p, nil
}

// LoadProfile reads the YAML profile at the path.
func LoadProfile(path string) (Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		return Profile{}, xerrors.Errorf("failed to open profile: %v", err)
	}

	defer f.Close()

	return ReadProfile(f)
}

// Write writes the YAML profile to the writer.
func (p Profile) Write(w io.Writer) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return xerrors.Errorf("failed to marshal profile: %v", err)
	}

	_, err = w.Write(data)
	if err != nil {
		return xerrors.Errorf("failed to write: %v", err)
	}

	return nil
}
