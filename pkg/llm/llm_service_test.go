package llm

import (
	"GroceryApp-Backend/pkg/ocr"
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLlm(t *testing.T) {
	log.SetOutput(io.Discard)

	RegisterFailHandler(Fail)
	RunSpecs(t, "Llm Suite")
}

// mockGenerator is a mock implementation of Generator
type mockGenerator struct {
	output string
	err    error
	calls  int
}

func (m *mockGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.output, nil
}

var _ = Describe("LlmService", func() {
	var (
		generator *mockGenerator
		service   LlmService
		ctx       context.Context
	)

	BeforeEach(func() {
		generator = &mockGenerator{}
		service = NewLlmService(generator)
		ctx = context.Background()
	})

	Describe("ExtractProductInfo", func() {
		Context("when the OCR text is empty", func() {
			It("returns an empty low-confidence result without calling the model", func() {
				result := service.ExtractProductInfo(ctx, "   ")

				Expect(result.Products).To(BeEmpty())
				Expect(result.LowConfidence).To(BeTrue())
				Expect(generator.calls).To(Equal(0))
			})
		})

		Context("when the OCR text is the no-text sentinel", func() {
			It("returns an empty low-confidence result without calling the model", func() {
				result := service.ExtractProductInfo(ctx, ocr.NoTextDetected)

				Expect(result.Products).To(BeEmpty())
				Expect(result.LowConfidence).To(BeTrue())
				Expect(generator.calls).To(Equal(0))
			})
		})

		Context("when the model call fails", func() {
			It("degrades instead of returning an error", func() {
				generator.err = errors.New("quota exceeded")

				result := service.ExtractProductInfo(ctx, "MILK 2L 3.99")

				Expect(result.Products).To(BeEmpty())
				Expect(result.LowConfidence).To(BeTrue())
			})
		})

		Context("when the model output is not valid JSON", func() {
			It("degrades instead of returning an error", func() {
				generator.output = "Sure! Here are the products you asked for."

				result := service.ExtractProductInfo(ctx, "MILK 2L 3.99")

				Expect(result.Products).To(BeEmpty())
				Expect(result.LowConfidence).To(BeTrue())
			})
		})

		Context("when the model wraps the JSON in a code fence", func() {
			It("strips the fence and parses the array", func() {
				generator.output = "```json\n[{\"productName\":\"Milk\",\"confidence\":0.95,\"expirationDate\":\"2026-09-06\"}]\n```"

				result := service.ExtractProductInfo(ctx, "MILK 2L 3.99")

				Expect(result.Products).To(HaveLen(1))
				Expect(result.Products[0].ProductName).To(Equal("Milk"))
				Expect(result.Products[0].ExpirationDate).To(Equal(time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)))
				Expect(result.LowConfidence).To(BeFalse())
			})
		})

		Context("when the model returns an empty array", func() {
			It("flags the result low-confidence", func() {
				generator.output = "[]"

				result := service.ExtractProductInfo(ctx, "MILK 2L 3.99")

				Expect(result.Products).To(BeEmpty())
				Expect(result.LowConfidence).To(BeTrue())
			})
		})

		Context("when every product clears the confidence threshold", func() {
			It("keeps the result high-confidence", func() {
				generator.output = `[
					{"productName":"Milk","foodCategory":"Dairy","unit":"L","quantity":"2","confidence":0.95},
					{"productName":"Bread","foodCategory":"Bakery","unit":"pcs","quantity":"1","confidence":0.7}
				]`

				result := service.ExtractProductInfo(ctx, "MILK 2L\nBREAD 1")

				Expect(result.Products).To(HaveLen(2))
				Expect(result.LowConfidence).To(BeFalse())
			})
		})

		Context("when any product falls below the confidence threshold", func() {
			It("flags the whole result low-confidence but keeps all products", func() {
				generator.output = `[
					{"productName":"Milk","confidence":0.95},
					{"productName":"Smudged item","confidence":0.3}
				]`

				result := service.ExtractProductInfo(ctx, "MILK 2L\n???")

				Expect(result.Products).To(HaveLen(2))
				Expect(result.LowConfidence).To(BeTrue())
			})
		})

		Context("when the model uses differently cased field names", func() {
			It("still binds the fields", func() {
				generator.output = `[{"ProductName":"Eggs","Confidence":0.9,"Quantity":"12","Unit":"pcs"}]`

				result := service.ExtractProductInfo(ctx, "EGGS 12")

				Expect(result.Products).To(HaveLen(1))
				Expect(result.Products[0].ProductName).To(Equal("Eggs"))
				Expect(result.Products[0].Quantity).To(Equal("12"))
				Expect(result.LowConfidence).To(BeFalse())
			})
		})

		Context("when the expiration date is missing or malformed", func() {
			It("leaves the date zero-valued", func() {
				generator.output = `[{"productName":"Milk","confidence":0.9,"expirationDate":"next week"}]`

				result := service.ExtractProductInfo(ctx, "MILK 2L")

				Expect(result.Products).To(HaveLen(1))
				Expect(result.Products[0].ExpirationDate.IsZero()).To(BeTrue())
			})
		})
	})
})
