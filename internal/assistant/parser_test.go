package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRuleParser_Parse_Intents(t *testing.T) {
	parser := NewRuleParser()

	tests := []struct {
		name         string
		utterance    string
		draftPending bool
		wantIntent   Intent
	}{
		{
			name:       "order vocabulary",
			utterance:  "1번 상품 주문해줘",
			wantIntent: IntentOrder,
		},
		{
			name:       "purchase verb is an order",
			utterance:  "소파 구매할래요",
			wantIntent: IntentOrder,
		},
		{
			name:       "payment verb is an order",
			utterance:  "결제 진행해주세요",
			wantIntent: IntentOrder,
		},
		{
			name:       "search vocabulary",
			utterance:  "소파 검색해줘",
			wantIntent: IntentSearch,
		},
		{
			name:       "bare product mention is a search",
			utterance:  "침대 상품 보여줘",
			wantIntent: IntentSearch,
		},
		{
			name:       "order vocabulary beats search vocabulary",
			utterance:  "검색된 상품 1번 주문",
			wantIntent: IntentOrder,
		},
		{
			name:         "continuation only while a draft is pending",
			utterance:    "kim@example.com",
			draftPending: true,
			wantIntent:   IntentContinuation,
		},
		{
			name:       "no draft means no continuation",
			utterance:  "kim@example.com",
			wantIntent: IntentNone,
		},
		{
			name:         "fresh order intent wins over continuation",
			utterance:    "두 번째 상품 주문",
			draftPending: true,
			wantIntent:   IntentOrder,
		},
		{
			name:       "unrelated chatter",
			utterance:  "오늘 날씨 어때?",
			wantIntent: IntentNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.Parse(tt.utterance, tt.draftPending)
			assert.Equal(t, tt.wantIntent, got.Intent)
		})
	}
}

func TestRuleParser_Parse_Ordinals(t *testing.T) {
	parser := NewRuleParser()

	tests := []struct {
		name      string
		utterance string
		want      int
	}{
		{name: "digit ordinal", utterance: "3번 상품 주문", want: 3},
		{name: "digit ordinal with space", utterance: "12 번 주문할게요", want: 12},
		{name: "first spelled out", utterance: "첫 번째 상품 주문", want: 1},
		{name: "second spelled out", utterance: "두번째 주문", want: 2},
		{name: "no ordinal", utterance: "소파 주문할래요", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.Parse(tt.utterance, false)
			assert.Equal(t, tt.want, got.Ordinal)
		})
	}
}

func TestRuleParser_Parse_Quantities(t *testing.T) {
	parser := NewRuleParser()

	tests := []struct {
		name      string
		utterance string
		want      int
	}{
		{name: "digit quantity", utterance: "1번 상품 2개 주문", want: 2},
		{name: "digit quantity with space", utterance: "1번 상품 10 개 주문", want: 10},
		{name: "one spelled out", utterance: "1번 한 개 주문", want: 1},
		{name: "two spelled out", utterance: "1번 두개 주문", want: 2},
		{name: "three spelled out", utterance: "1번 세 개 주문", want: 3},
		{name: "defaults to one", utterance: "1번 상품 주문", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parser.Parse(tt.utterance, false)
			assert.Equal(t, tt.want, got.Quantity)
		})
	}
}

func TestRuleParser_Parse_SlotExtraction(t *testing.T) {
	parser := NewRuleParser()

	t.Run("email anywhere in the utterance", func(t *testing.T) {
		got := parser.Parse("제 이메일은 kim.minsu+shop@example.co.kr 입니다", true)
		assert.Equal(t, "kim.minsu+shop@example.co.kr", got.Email)
	})

	t.Run("name after introduction pattern", func(t *testing.T) {
		got := parser.Parse("이름은 김민수", true)
		assert.Equal(t, "김민수", got.Name)
	})

	t.Run("name after jeoneun pattern", func(t *testing.T) {
		got := parser.Parse("저는 박지영", true)
		assert.Equal(t, "박지영", got.Name)
	})

	t.Run("bare token treated as name", func(t *testing.T) {
		got := parser.Parse("김민수", true)
		assert.Equal(t, "김민수", got.Name)
		assert.Equal(t, IntentContinuation, got.Intent)
	})

	t.Run("single rune is not a name", func(t *testing.T) {
		got := parser.Parse("김", true)
		assert.Empty(t, got.Name)
	})

	t.Run("search keyword strips command noise", func(t *testing.T) {
		got := parser.Parse("소파 찾아줘", false)
		assert.Equal(t, IntentSearch, got.Intent)
		assert.Equal(t, "소파", got.Keyword)
	})

	t.Run("generic browse yields empty keyword", func(t *testing.T) {
		got := parser.Parse("상품 보여줘", false)
		assert.Equal(t, IntentSearch, got.Intent)
		assert.Empty(t, got.Keyword)
	})
}
