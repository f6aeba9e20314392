package network

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/liquigraph/pkg/validation"
)

// Dataset file layout:
//
//	companies:
//	  - id: 1
//	    name: MFG-001
//	    capital: 50000
//	edges:
//	  - debtor: 1
//	    creditor: 2
//	    amount: 1200.5
//	    due_round: 3
type datasetFile struct {
	Companies []datasetCompany `yaml:"companies" validate:"required,min=1,dive"`
	Edges     []datasetEdge    `yaml:"edges" validate:"omitempty,dive"`
}

type datasetCompany struct {
	ID      uint64  `yaml:"id" validate:"required"`
	Name    string  `yaml:"name"`
	Capital float64 `yaml:"capital" validate:"gte=0"`
}

type datasetEdge struct {
	Debtor   uint64  `yaml:"debtor" validate:"required"`
	Creditor uint64  `yaml:"creditor" validate:"required"`
	Amount   float64 `yaml:"amount" validate:"required,gt=0"`
	DueRound int     `yaml:"due_round" validate:"gte=0"`
}

// LoadDataset reads a YAML company/edge dataset and builds the network.
func LoadDataset(path string) (*Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, NewMalformedError("load").Context(path).Cause(err).Err()
	}
	defer f.Close()
	return ParseDataset(f)
}

// ParseDataset builds a network from YAML dataset content.
func ParseDataset(r io.Reader) (*Network, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, NewMalformedError("load").Cause(err).Err()
	}

	var ds datasetFile
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return nil, NewMalformedError("load").Context("invalid yaml").Cause(err).Err()
	}
	if err := validation.ValidateStruct(&ds); err != nil {
		return nil, NewMalformedError("load").Cause(err).Err()
	}

	companies := make([]Company, 0, len(ds.Companies))
	for _, c := range ds.Companies {
		if c.Name != "" {
			if err := validation.ValidateCompanyName(c.Name); err != nil {
				return nil, NewMalformedError("load").Company(c.ID).Cause(err).Err()
			}
		}
		companies = append(companies, Company{ID: c.ID, Name: c.Name, Capital: c.Capital})
	}

	edges := make([]DebtEdge, 0, len(ds.Edges))
	for _, e := range ds.Edges {
		edges = append(edges, DebtEdge{
			Debtor:   e.Debtor,
			Creditor: e.Creditor,
			Amount:   e.Amount,
			DueRound: e.DueRound,
		})
	}

	n, err := New(companies, edges)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return n, nil
}
