package packages

import (
	"context"

	"pousada/internal/app/dto"
	"pousada/internal/app/handlers/support"
	"pousada/internal/app/queries"
	"pousada/internal/app/uow"
)

const listPackagesKey = "packages.list"

type ListPackagesQuery struct{}

func (q ListPackagesQuery) Key() string { return listPackagesKey }

type ListPackagesHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *ListPackagesHandler) Handle(ctx context.Context, _ ListPackagesQuery) (dto.PackageCollection, error) {
	unit, ctx, cleanup, err := support.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.PackageCollection{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	active, err := support.ActivePackages(ctx, unit)
	if err != nil {
		return dto.PackageCollection{}, err
	}
	out := dto.PackageCollection{Items: make([]dto.PackageSummary, 0, len(active))}
	for _, pkg := range active {
		out.Items = append(out.Items, dto.MapPackage(pkg))
	}
	return out, nil
}

var _ queries.Handler[ListPackagesQuery, dto.PackageCollection] = (*ListPackagesHandler)(nil)
