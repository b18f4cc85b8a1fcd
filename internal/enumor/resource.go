package enumor

import "fmt"

// ResourceType is a cloud resource type key.
type ResourceType string

const (
	CvmResType              ResourceType = "cvm"
	VpcResType              ResourceType = "vpc"
	SubnetResType           ResourceType = "subnet"
	SecurityGroupResType    ResourceType = "security_group"
	DiskResType             ResourceType = "disk"
	EipResType              ResourceType = "eip"
	RouteTableResType       ResourceType = "route_table"
	NetworkInterfaceResType ResourceType = "network_interface"
	ClbResType              ResourceType = "clb"
	CertResType             ResourceType = "cert"
	ImageResType            ResourceType = "image"
)

// resourceTypes keeps the canonical display order.
var resourceTypes = []ResourceType{
	CvmResType,
	VpcResType,
	SubnetResType,
	SecurityGroupResType,
	DiskResType,
	EipResType,
	RouteTableResType,
	NetworkInterfaceResType,
	ClbResType,
	CertResType,
	ImageResType,
}

var resourceTypeNames = map[ResourceType]string{
	CvmResType:              "Host",
	VpcResType:              "VPC",
	SubnetResType:           "Subnet",
	SecurityGroupResType:    "Security Group",
	DiskResType:             "Disk",
	EipResType:              "Elastic IP",
	RouteTableResType:       "Route Table",
	NetworkInterfaceResType: "Network Interface",
	ClbResType:              "Load Balancer",
	CertResType:             "Certificate",
	ImageResType:            "Image",
}

// ResourceTypes returns all resource types in canonical order.
func ResourceTypes() []ResourceType {
	out := make([]ResourceType, len(resourceTypes))
	copy(out, resourceTypes)
	return out
}

// Validate the ResourceType is valid or not.
func (r ResourceType) Validate() error {
	if _, ok := resourceTypeNames[r]; !ok {
		return fmt.Errorf("unsupported resource type: %s", r)
	}
	return nil
}

// DisplayName returns the human readable name, or the raw key when unknown.
func (r ResourceType) DisplayName() string {
	if n, ok := resourceTypeNames[r]; ok {
		return n
	}
	return string(r)
}

// Order returns the position of r in the canonical order, unknown types sort last.
func (r ResourceType) Order() int {
	for i, rt := range resourceTypes {
		if rt == r {
			return i
		}
	}
	return len(resourceTypes)
}
