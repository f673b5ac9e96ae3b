package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yungbote/waltz-backend/internal/app"
	"github.com/yungbote/waltz-backend/internal/domain/entity"
	rg "github.com/yungbote/waltz-backend/internal/domain/reportgrid"
	pkgerrors "github.com/yungbote/waltz-backend/internal/pkg/errors"
	"github.com/yungbote/waltz-backend/internal/services"
)

// gridFile is the on-disk form of a grid definition.
type gridFile struct {
	Name        string              `yaml:"name"`
	ExternalID  string              `yaml:"external_id"`
	Description string              `yaml:"description"`
	SubjectKind string              `yaml:"subject_kind"`
	Kind        string              `yaml:"kind"`
	Fixed       []fixedColumnFile   `yaml:"fixed_columns"`
	Derived     []derivedColumnFile `yaml:"derived_columns"`
}

type fixedColumnFile struct {
	Position      int     `yaml:"position"`
	DisplayName   *string `yaml:"display_name"`
	ExternalID    *string `yaml:"external_id"`
	Description   *string `yaml:"description"`
	EntityKind    string  `yaml:"entity_kind"`
	EntityID      int64   `yaml:"entity_id"`
	QualifierKind string  `yaml:"qualifier_kind"`
	QualifierID   *int64  `yaml:"qualifier_id"`
	Options       string  `yaml:"options"`
	// FieldRef is "ENTITY_KIND.field_name" for complex columns.
	FieldRef string `yaml:"field_ref"`
}

type derivedColumnFile struct {
	Position    int     `yaml:"position"`
	DisplayName *string `yaml:"display_name"`
	ExternalID  *string `yaml:"external_id"`
	Description *string `yaml:"description"`
	Script      string  `yaml:"script"`
}

func parseGridFile(r io.Reader) (*gridFile, error) {
	var f gridFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode grid file: %w", err)
	}
	f.ExternalID = strings.TrimSpace(f.ExternalID)
	if f.ExternalID == "" || strings.TrimSpace(f.Name) == "" {
		return nil, fmt.Errorf("grid file needs name and external_id")
	}
	return &f, nil
}

func (f *gridFile) createCommand() services.CreateCommand {
	ext := f.ExternalID
	return services.CreateCommand{
		Name:        f.Name,
		Description: f.Description,
		ExternalID:  &ext,
		SubjectKind: entity.ParseKind(f.SubjectKind),
		Kind:        rg.GridKind(strings.ToUpper(strings.TrimSpace(f.Kind))),
	}
}

// columns converts the file columns, resolving field refs against refs.
func (f *gridFile) columns(refs []*rg.EntityFieldReference) ([]rg.FixedColumn, []rg.DerivedColumn, error) {
	byKey := make(map[string]*rg.EntityFieldReference, len(refs))
	for _, ref := range refs {
		byKey[string(ref.EntityKind)+"."+ref.FieldName] = ref
	}
	fixed := make([]rg.FixedColumn, 0, len(f.Fixed))
	for _, c := range f.Fixed {
		col := rg.FixedColumn{
			Position:                c.Position,
			DisplayName:             c.DisplayName,
			ExternalID:              c.ExternalID,
			ColumnDescription:       c.Description,
			ColumnEntityKind:        entity.ParseKind(c.EntityKind),
			ColumnEntityID:          c.EntityID,
			ColumnQualifierID:       c.QualifierID,
			AdditionalColumnOptions: rg.AdditionalColumnOptions(strings.ToUpper(strings.TrimSpace(c.Options))).Normalize(),
		}
		if qk := entity.ParseKind(c.QualifierKind); qk != "" {
			col.ColumnQualifierKind = &qk
		}
		if c.FieldRef != "" {
			kind, field, ok := strings.Cut(strings.TrimSpace(c.FieldRef), ".")
			ref := byKey[string(entity.ParseKind(kind))+"."+field]
			if !ok || ref == nil {
				return nil, nil, fmt.Errorf("column %d: unknown field_ref %q: %w", c.Position, c.FieldRef, pkgerrors.ErrInvalidArgument)
			}
			col.EntityFieldReference = ref
		}
		fixed = append(fixed, col)
	}
	derived := make([]rg.DerivedColumn, 0, len(f.Derived))
	for _, d := range f.Derived {
		derived = append(derived, rg.DerivedColumn{
			Position:          d.Position,
			DisplayName:       d.DisplayName,
			ExternalID:        d.ExternalID,
			ColumnDescription: d.Description,
			DerivationScript:  d.Script,
		})
	}
	return fixed, derived, nil
}

func newImportCmd(root *rootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Create or update a grid from a YAML definition, matched by external id",
		RunE: func(cmd *cobra.Command, args []string) error {
			fh, err := os.Open(file)
			if err != nil {
				return err
			}
			defer fh.Close()
			gf, err := parseGridFile(fh)
			if err != nil {
				return err
			}

			a, err := app.New()
			if err != nil {
				return err
			}
			defer a.Close()
			ctx := cmd.Context()
			grids := a.Services.ReportGrid

			refs, err := grids.ListFieldReferences(ctx)
			if err != nil {
				return err
			}
			fixed, derived, err := gf.columns(refs)
			if err != nil {
				return err
			}

			def, err := grids.GetDefinition(ctx, rg.ByExternalID(gf.ExternalID))
			switch {
			case errors.Is(err, pkgerrors.ErrNotFound):
				def, err = grids.Create(ctx, root.user, gf.createCommand())
			case err == nil:
				cc := gf.createCommand()
				def, err = grids.Update(ctx, def.ID, root.user, services.UpdateCommand{Name: cc.Name, Description: cc.Description, Kind: cc.Kind})
			}
			if err != nil {
				return err
			}
			def, err = grids.ReplaceColumns(ctx, def.ID, root.user, fixed, derived)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported grid %d (%s): %d fixed, %d derived columns\n",
				def.ID, gf.ExternalID, len(def.FixedColumns), len(def.DerivedColumns))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Grid definition YAML (required)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
