package enumor

import "fmt"

// Vendor is a cloud service provider.
type Vendor string

const (
	TCloud Vendor = "tcloud"
	Aws    Vendor = "aws"
	Azure  Vendor = "azure"
	Gcp    Vendor = "gcp"
	HuaWei Vendor = "huawei"
	Other  Vendor = "other"
)

// Vendors returns all known vendors in display order.
func Vendors() []Vendor {
	return []Vendor{TCloud, Aws, Azure, Gcp, HuaWei, Other}
}

// Validate the Vendor is valid or not.
func (v Vendor) Validate() error {
	switch v {
	case TCloud, Aws, Azure, Gcp, HuaWei, Other:
	default:
		return fmt.Errorf("unsupported vendor: %s", v)
	}
	return nil
}

var vendorNames = map[Vendor]string{
	TCloud: "Tencent Cloud",
	Aws:    "AWS",
	Azure:  "Azure",
	Gcp:    "GCP",
	HuaWei: "Huawei Cloud",
	Other:  "Other",
}

// Name returns the display name of the vendor.
func (v Vendor) Name() string {
	if n, ok := vendorNames[v]; ok {
		return n
	}
	return string(v)
}
