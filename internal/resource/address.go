package resource

// Address is the resolved form of a (bucket, set, object) request: the key
// sent to storage and the path checked against the authorization provider.
type Address struct {
	Bucket string
	// Key is the canonical storage key. With a set it is "<set>.<object>".
	// Periods inside set or object names are a caller constraint: they are
	// never escaped, so such keys are ambiguous on the storage side.
	Key string
	// AuthzPath is the ordered segment sequence the provider's policy
	// schema expects. Segment order is a compatibility contract.
	AuthzPath []string
}

// Resolve computes the canonical key and authorization path for a request.
// An empty set means the object is addressed directly. Set-scoped requests
// are authorized at the set, not the individual object.
func Resolve(bucket, set, object string) Address {
	if set == "" {
		return Address{
			Bucket:    bucket,
			Key:       object,
			AuthzPath: []string{"buckets", bucket, "objects", object},
		}
	}
	return Address{
		Bucket:    bucket,
		Key:       set + "." + object,
		AuthzPath: []string{"buckets", bucket, "sets", set},
	}
}
