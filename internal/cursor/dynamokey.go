// Package cursor converts DynamoDB key maps to and from opaque string tokens.
//
// Scan and Query resume from a LastEvaluatedKey map rather than a string. Key attributes
// are limited to S, N and B, so a key round-trips through a small JSON document that is
// base64url encoded.
package cursor

import (
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	json "github.com/goccy/go-json"
)

type keyAttribute struct {
	S *string `json:"S,omitempty"`
	N *string `json:"N,omitempty"`
	B []byte  `json:"B,omitempty"`
}

// EncodeKey returns the token for key, or nil when key is empty.
func EncodeKey(key map[string]types.AttributeValue) (*string, error) {
	if len(key) == 0 {
		return nil, nil
	}

	doc := make(map[string]keyAttribute, len(key))
	for name, value := range key {
		switch v := value.(type) {
		case *types.AttributeValueMemberS:
			doc[name] = keyAttribute{S: &v.Value}
		case *types.AttributeValueMemberN:
			doc[name] = keyAttribute{N: &v.Value}
		case *types.AttributeValueMemberB:
			doc[name] = keyAttribute{B: v.Value}
		default:
			return nil, fmt.Errorf("unsupported key attribute type %T for %q", value, name)
		}
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode key: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(data)
	return &token, nil
}

// DecodeKey parses a token produced by EncodeKey.
func DecodeKey(token string) (map[string]types.AttributeValue, error) {
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid starting token: %w", err)
	}

	var doc map[string]keyAttribute
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid starting token: %w", err)
	}
	if len(doc) == 0 {
		return nil, fmt.Errorf("invalid starting token: empty key")
	}

	key := make(map[string]types.AttributeValue, len(doc))
	for name, attr := range doc {
		switch {
		case attr.S != nil:
			key[name] = &types.AttributeValueMemberS{Value: *attr.S}
		case attr.N != nil:
			key[name] = &types.AttributeValueMemberN{Value: *attr.N}
		case attr.B != nil:
			key[name] = &types.AttributeValueMemberB{Value: attr.B}
		default:
			return nil, fmt.Errorf("invalid starting token: attribute %q has no value", name)
		}
	}
	return key, nil
}
