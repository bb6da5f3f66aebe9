package dynamodb

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acct-ai/transaction-summary/pkg/stores"
)

func TestDecodeItem(t *testing.T) {
	item := map[string]types.AttributeValue{
		"id":       &types.AttributeValueMemberS{Value: "txn-1"},
		"amount":   &types.AttributeValueMemberN{Value: "10.50"},
		"verified": &types.AttributeValueMemberBOOL{Value: true},
		"note":     &types.AttributeValueMemberNULL{Value: true},
		"tags":     &types.AttributeValueMemberSS{Value: []string{"food", "travel"}},
		"scores":   &types.AttributeValueMemberNS{Value: []string{"1.5", "2.5"}},
		"lines": &types.AttributeValueMemberL{Value: []types.AttributeValue{
			&types.AttributeValueMemberS{Value: "a"},
			&types.AttributeValueMemberN{Value: "3"},
		}},
		"meta": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"fee": &types.AttributeValueMemberN{Value: "0.30"},
		}},
	}

	record, err := decodeItem(item)
	require.NoError(t, err)

	assert.Equal(t, "txn-1", record["id"])
	assert.Equal(t, true, record["verified"])
	assert.Nil(t, record["note"])
	assert.Equal(t, []string{"food", "travel"}, record["tags"])

	amount, ok := record["amount"].(decimal.Decimal)
	require.True(t, ok, "numbers must decode as decimals")
	assert.True(t, amount.Equal(decimal.RequireFromString("10.50")))

	scores, ok := record["scores"].([]decimal.Decimal)
	require.True(t, ok)
	require.Len(t, scores, 2)
	assert.True(t, scores[0].Equal(decimal.RequireFromString("1.5")))

	lines, ok := record["lines"].([]interface{})
	require.True(t, ok)
	require.Len(t, lines, 2)
	assert.Equal(t, "a", lines[0])
	three, ok := lines[1].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, three.Equal(decimal.NewFromInt(3)))

	meta, ok := record["meta"].(stores.Record)
	require.True(t, ok, "nested maps decode as records")
	fee, ok := meta["fee"].(decimal.Decimal)
	require.True(t, ok)
	assert.True(t, fee.Equal(decimal.RequireFromString("0.30")))
}

func TestDecodeValueInvalidNumber(t *testing.T) {
	_, err := decodeValue(&types.AttributeValueMemberN{Value: "not-a-number"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid number")
}

func TestDecodeItemInvalidNumberNamesAttribute(t *testing.T) {
	_, err := decodeItem(map[string]types.AttributeValue{
		"amount": &types.AttributeValueMemberN{Value: "x"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "attribute amount")
}
