//go:build e2e

package api

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Url API", func() {
	It("creates a url", func(ctx SpecContext) {
		data := newData("url")

		u := create(ctx, "url", data)

		expectFields(u, "id", "url", "params", "createdAt", "updatedAt")
		Expect(u["url"]).To(Equal(data["url"]))
		expectTimestamps(u)
	})

	It("answers a delete of a missing url", func(ctx SpecContext) {
		resp, err := client.Delete(ctx, "url", "507f1f77bcf86cd799439011")
		Expect(err).NotTo(HaveOccurred())
		Expect(resp.StatusCode).To(BeNumerically("<", 500))
	})

	DescribeTable("rejects malformed urls",
		func(ctx SpecContext, value string) {
			resp, err := client.Create(ctx, "url", with(newData("url"), map[string]any{"url": value}))
			Expect(err).NotTo(HaveOccurred())
			expectRejected(resp, 422)
		},
		Entry("not a url", "not-a-valid-url"),
		Entry("missing protocol", "example.com/events"),
	)
})
