package netio

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/joshharrison/critpath/internal/graph"
	"github.com/joshharrison/critpath/internal/pert"
)

// hclNetwork is the top-level structure of a network file. Blocks of other
// types are tolerated so one file can describe both views of a project.
type hclNetwork struct {
	Activities []*hclActivity `hcl:"activity,block"`
	Remain     hcl.Body       `hcl:",remain"`
}

type hclActivity struct {
	ID           string   `hcl:"id,label"`
	Name         string   `hcl:"name,optional"`
	Duration     float64  `hcl:"duration"`
	Predecessors []string `hcl:"predecessors,optional"`
}

type hclPERTNetwork struct {
	Activities []*hclPERTActivity `hcl:"pert_activity,block"`
	Remain     hcl.Body           `hcl:",remain"`
}

type hclPERTActivity struct {
	ID           string   `hcl:"id,label"`
	Name         string   `hcl:"name,optional"`
	Optimistic   float64  `hcl:"optimistic"`
	MostLikely   float64  `hcl:"most_likely"`
	Pessimistic  float64  `hcl:"pessimistic"`
	Predecessors []string `hcl:"predecessors,optional"`
}

func parseHCLBody(data []byte, filename string, into any) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	if diags := gohcl.DecodeBody(file.Body, nil, into); diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}
	return nil
}

// ParseHCL reads `activity "<id>" { ... }` blocks.
func ParseHCL(data []byte, filename string) ([]graph.Activity, error) {
	var doc hclNetwork
	if err := parseHCLBody(data, filename, &doc); err != nil {
		return nil, err
	}

	activities := make([]graph.Activity, 0, len(doc.Activities))
	for _, b := range doc.Activities {
		a := graph.Activity{
			ID:           b.ID,
			Name:         b.Name,
			Duration:     b.Duration,
			Predecessors: b.Predecessors,
		}
		if a.Name == "" {
			a.Name = a.ID
		}
		if a.Predecessors == nil {
			a.Predecessors = []string{}
		}
		activities = append(activities, a)
	}
	return activities, nil
}

// ParsePERTHCL reads `pert_activity "<id>" { ... }` blocks.
func ParsePERTHCL(data []byte, filename string) ([]pert.Activity, error) {
	var doc hclPERTNetwork
	if err := parseHCLBody(data, filename, &doc); err != nil {
		return nil, err
	}

	activities := make([]pert.Activity, 0, len(doc.Activities))
	for _, b := range doc.Activities {
		a := pert.Activity{
			ID:           b.ID,
			Name:         b.Name,
			Optimistic:   b.Optimistic,
			MostLikely:   b.MostLikely,
			Pessimistic:  b.Pessimistic,
			Predecessors: b.Predecessors,
		}
		if a.Name == "" {
			a.Name = a.ID
		}
		if a.Predecessors == nil {
			a.Predecessors = []string{}
		}
		activities = append(activities, a)
	}
	return activities, nil
}
