package models

import "github.com/rflorenc/cloud-resource-workbench/internal/enumor"

// ResourceCount is the number of resources of one type.
type ResourceCount struct {
	Type  enumor.ResourceType `json:"type"`
	Count int                 `json:"count"`
}

// ResourceCountResult is the payload of a res_counts query.
type ResourceCountResult struct {
	Items []ResourceCount `json:"items"`
}

// VendorCredentialMap maps a credential label to a stored secret id.
type VendorCredentialMap map[string]string
