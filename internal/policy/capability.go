package policy

import "bazaar/internal/domain/models"

// Capability is a named permission gated by account type and subscription,
// independent of any specific resource instance.
type Capability string

const (
	CapabilityCreateProviderProfile  Capability = "create_provider_profile"
	CapabilityCreateProduct          Capability = "create_product"
	CapabilityCreateBlogPost         Capability = "create_blog_post"
	CapabilityCreateDirectoryListing Capability = "create_directory_listing"
	CapabilityCreateComment          Capability = "create_comment"
	CapabilityLikeComment            Capability = "like_comment"
)

// CapabilityForCreate maps a resource type to the capability required to
// create it. Returns false for types that are not created through the
// capability table (unknown types).
func CapabilityForCreate(resourceType models.ResourceType) (Capability, bool) {
	switch resourceType {
	case models.ResourceProviderProfile:
		return CapabilityCreateProviderProfile, true
	case models.ResourceProduct:
		return CapabilityCreateProduct, true
	case models.ResourceBlogPost:
		return CapabilityCreateBlogPost, true
	case models.ResourceDirectoryListing:
		return CapabilityCreateDirectoryListing, true
	case models.ResourceComment:
		return CapabilityCreateComment, true
	}
	return "", false
}
