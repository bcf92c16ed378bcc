//go:build e2e

package api

import (
	"github.com/eventsqa/harness/pkg/envelope"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Crawl API", func() {
	It("lists crawls", func(ctx SpecContext) {
		resp, err := client.List(ctx, "crawl")
		Expect(err).NotTo(HaveOccurred())
		items := expectEnvelope(resp, envelope.OpList)

		for _, item := range items {
			expectFields(item, "id", "lastParsedDate", "parseStatus", "errorsEncountered", "urlId")
			Expect(item["errorsEncountered"]).To(Or(BeNil(), BeAssignableToTypeOf([]any{})))
			expectTimestamps(item)
		}
	})

	It("accepts a created crawl", func(ctx SpecContext) {
		crawl := create(ctx, "crawl", newData("crawl"))

		Expect(crawl["parseStatus"]).To(HaveKeyWithValue("status", "success"))
		Expect(crawl["urlId"]).To(Equal(newData("crawl")["urlId"]))
	})

	It("does not update crawls", func(ctx SpecContext) {
		resp, err := client.Update(ctx, "crawl", "507f1f77bcf86cd799439011", map[string]any{"parseStatus": map[string]any{"status": "updated"}})
		Expect(err).NotTo(HaveOccurred())

		Expect(resp.StatusCode).To(Equal(200))
		Expect(resp.Envelope).NotTo(BeNil())
		Expect(resp.Envelope.Status).To(BeElementOf("failed", "completed"))
	})

	It("answers a get of a missing crawl", func(ctx SpecContext) {
		resp, err := client.Get(ctx, "crawl", "507f1f77bcf86cd799439011")
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(BeNumerically("<", 500))
	})
})
