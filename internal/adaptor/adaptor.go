// Package adaptor adapts each cloud vendor to a common resource-counting
// interface.
package adaptor

import (
	"context"
	"fmt"

	"github.com/rflorenc/cloud-resource-workbench/internal/enumor"
	"github.com/rflorenc/cloud-resource-workbench/internal/models"
)

// Adaptor defines the operations available on a cloud vendor.
type Adaptor interface {
	// Vendor returns the vendor this adaptor serves.
	Vendor() enumor.Vendor

	// ResourceTypes returns the resource types the vendor supports, in
	// canonical order.
	ResourceTypes() []enumor.ResourceType

	// CountResources returns the number of resources of every supported type
	// reachable with the secret.
	CountResources(ctx context.Context, secret *models.Secret) ([]models.ResourceCount, error)
}

// Vendor resource registries.
var registry = map[enumor.Vendor][]enumor.ResourceType{
	enumor.TCloud: enumor.ResourceTypes(),
	enumor.Aws: {
		enumor.CvmResType, enumor.VpcResType, enumor.SubnetResType, enumor.SecurityGroupResType,
		enumor.DiskResType, enumor.EipResType, enumor.RouteTableResType,
		enumor.NetworkInterfaceResType, enumor.ImageResType,
	},
	enumor.Azure: {
		enumor.CvmResType, enumor.VpcResType, enumor.SubnetResType, enumor.SecurityGroupResType,
		enumor.DiskResType, enumor.EipResType, enumor.RouteTableResType,
		enumor.NetworkInterfaceResType,
	},
	enumor.Gcp: {
		enumor.CvmResType, enumor.VpcResType, enumor.SubnetResType, enumor.SecurityGroupResType,
		enumor.DiskResType, enumor.EipResType, enumor.RouteTableResType, enumor.ImageResType,
	},
	enumor.HuaWei: {
		enumor.CvmResType, enumor.VpcResType, enumor.SubnetResType, enumor.SecurityGroupResType,
		enumor.DiskResType, enumor.EipResType, enumor.RouteTableResType,
	},
	enumor.Other: {},
}

// New creates the Adaptor for a vendor.
func New(v enumor.Vendor) (Adaptor, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	types := registry[v]
	out := make([]enumor.ResourceType, len(types))
	copy(out, types)
	return &inventoryAdaptor{vendor: v, types: out}, nil
}

// Supports reports whether the vendor has the resource type.
func Supports(v enumor.Vendor, rt enumor.ResourceType) bool {
	for _, t := range registry[v] {
		if t == rt {
			return true
		}
	}
	return false
}

// inventoryAdaptor counts resources from the inventory recorded on the
// secret.
type inventoryAdaptor struct {
	vendor enumor.Vendor
	types  []enumor.ResourceType
}

func (a *inventoryAdaptor) Vendor() enumor.Vendor {
	return a.vendor
}

func (a *inventoryAdaptor) ResourceTypes() []enumor.ResourceType {
	return a.types
}

func (a *inventoryAdaptor) CountResources(ctx context.Context, secret *models.Secret) ([]models.ResourceCount, error) {
	if secret.Vendor != a.vendor {
		return nil, fmt.Errorf("secret %s: %w", secret.ID, models.ErrVendorMismatch)
	}
	counts := make([]models.ResourceCount, 0, len(a.types))
	for _, rt := range a.types {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		counts = append(counts, models.ResourceCount{Type: rt, Count: secret.Resources[rt]})
	}
	return counts, nil
}

// SumCounts adds up the per-secret counts of one vendor, keeping the
// vendor's resource type order.
func SumCounts(a Adaptor, perSecret ...[]models.ResourceCount) []models.ResourceCount {
	totals := make(map[enumor.ResourceType]int)
	for _, counts := range perSecret {
		for _, c := range counts {
			totals[c.Type] += c.Count
		}
	}
	out := make([]models.ResourceCount, 0, len(a.ResourceTypes()))
	for _, rt := range a.ResourceTypes() {
		out = append(out, models.ResourceCount{Type: rt, Count: totals[rt]})
	}
	return out
}
