package envelope_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/eventsqa/harness/pkg/envelope"
	srvErrors "github.com/eventsqa/harness/pkg/errors"
)

func fullPayload(status string) map[string]any {
	return map[string]any{
		"data":          []any{map[string]any{"id": "1", "title": "Test Event"}},
		"message":       "ok",
		"level":         "info",
		"metadata":      map[string]any{},
		"notifications": []any{},
		"status":        status,
		"summary":       "",
	}
}

var _ = Describe("Envelope", func() {
	Context("Validate", func() {
		It("should accept a payload with every key", func() {
			Expect(envelope.Validate(fullPayload("completed"))).To(Succeed())
		})

		It("should accept null values", func() {
			p := fullPayload("completed")
			p["data"] = nil
			Expect(envelope.Validate(p)).To(Succeed())
		})

		It("should reject a payload missing a key", func() {
			p := fullPayload("completed")
			delete(p, "summary")

			err := envelope.Validate(p)

			Expect(err).To(MatchError("missing top-level key: summary"))
			Expect(srvErrors.IsValidationError(err)).To(BeTrue())
		})

		It("should reject non-objects", func() {
			Expect(envelope.Validate([]any{})).NotTo(Succeed())
		})
	})

	Context("ExpectStatus", func() {
		DescribeTable("accepted statuses",
			func(op envelope.Operation, status string, ok bool) {
				err := envelope.ExpectStatus(fullPayload(status), op)
				if ok {
					Expect(err).NotTo(HaveOccurred())
				} else {
					Expect(err).To(HaveOccurred())
				}
			},
			Entry("create completed", envelope.OpCreate, "completed", true),
			Entry("create perfect", envelope.OpCreate, "perfect", false),
			Entry("delete completed", envelope.OpDelete, "completed", true),
			Entry("list perfect", envelope.OpList, "perfect", true),
			Entry("list completed", envelope.OpList, "completed", true),
			Entry("get failed", envelope.OpGet, "failed", false),
		)
	})

	Context("Decode", func() {
		It("should decode data items", func() {
			body := []byte(`{"data":[{"id":"a","title":"Test Event"}],"message":null,"level":null,"metadata":null,"notifications":null,"status":"completed","summary":null}`)

			env, err := envelope.Decode(body)
			Expect(err).NotTo(HaveOccurred())
			Expect(env.Status).To(Equal("completed"))

			items, err := env.Items()
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
			Expect(items[0]).To(HaveKeyWithValue("title", "Test Event"))
		})

		It("should fail on invalid JSON", func() {
			_, err := envelope.Decode([]byte(`<html>`))
			Expect(srvErrors.IsValidationError(err)).To(BeTrue())
		})

		It("should wrap a single object", func() {
			env := &envelope.Envelope{Data: map[string]any{"id": "x"}}
			items, err := env.Items()
			Expect(err).NotTo(HaveOccurred())
			Expect(items).To(HaveLen(1))
		})

		It("should reject scalar data", func() {
			env := &envelope.Envelope{Data: "nope"}
			_, err := env.Items()
			Expect(err).To(HaveOccurred())
		})
	})

	Context("ValidateTimestamps", func() {
		DescribeTable("ISO-8601 forms",
			func(ts string) {
				Expect(envelope.ValidateTimestamps(map[string]any{"createdAt": ts, "updatedAt": ts})).To(Succeed())
			},
			Entry("zulu", "2024-01-15T10:30:00Z"),
			Entry("fractional with zone", "2024-01-15T10:30:00.123+02:00"),
			Entry("naive", "2024-01-15T10:30:00"),
			Entry("naive fractional", "2024-01-15T10:30:00.123456"),
			Entry("date only", "2024-01-15"),
		)

		It("should skip absent fields", func() {
			Expect(envelope.ValidateTimestamps(map[string]any{"id": "1"})).To(Succeed())
		})

		It("should reject non-strings", func() {
			Expect(envelope.ValidateTimestamps(map[string]any{"createdAt": 12})).To(MatchError("createdAt should be a string"))
		})

		It("should reject garbage", func() {
			Expect(envelope.ValidateTimestamps(map[string]any{"updatedAt": "yesterday"})).To(HaveOccurred())
		})
	})
})
