package validators

// Field name constants used to restrict validation to a subset of fields.
const (
	// FieldID targets the client-generated envelope UUID.
	FieldID = "id"

	// FieldTimestamp targets the sender timestamp of an envelope.
	FieldTimestamp = "timestamp"

	// FieldContent targets the encoded sync content.
	FieldContent = "content"

	// FieldSeq targets the relay sequence number of an ack request.
	FieldSeq = "seq"
)
