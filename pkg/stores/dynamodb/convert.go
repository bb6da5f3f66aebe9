package dynamodb

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/acct-ai/transaction-summary/pkg/stores"
)

// decodeItem converts a raw DynamoDB item into a Record. Number attributes
// stay as decimal.Decimal so aggregation never accumulates in floats.
func decodeItem(item map[string]types.AttributeValue) (stores.Record, error) {
	record := make(stores.Record, len(item))
	for name, attr := range item {
		value, err := decodeValue(attr)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		record[name] = value
	}
	return record, nil
}

func decodeValue(attr types.AttributeValue) (interface{}, error) {
	switch v := attr.(type) {
	case *types.AttributeValueMemberS:
		return v.Value, nil
	case *types.AttributeValueMemberN:
		d, err := decimal.NewFromString(v.Value)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", v.Value, err)
		}
		return d, nil
	case *types.AttributeValueMemberBOOL:
		return v.Value, nil
	case *types.AttributeValueMemberNULL:
		return nil, nil
	case *types.AttributeValueMemberB:
		return v.Value, nil
	case *types.AttributeValueMemberSS:
		return v.Value, nil
	case *types.AttributeValueMemberNS:
		numbers := make([]decimal.Decimal, 0, len(v.Value))
		for _, raw := range v.Value {
			d, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q in set: %w", raw, err)
			}
			numbers = append(numbers, d)
		}
		return numbers, nil
	case *types.AttributeValueMemberL:
		list := make([]interface{}, 0, len(v.Value))
		for _, nested := range v.Value {
			value, err := decodeValue(nested)
			if err != nil {
				return nil, err
			}
			list = append(list, value)
		}
		return list, nil
	case *types.AttributeValueMemberM:
		return decodeItem(v.Value)
	default:
		return nil, fmt.Errorf("unsupported attribute type %T", attr)
	}
}
