//go:build e2e

package api

import (
	"github.com/eventsqa/harness/pkg/envelope"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Profile API", func() {
	It("creates a profile", func(ctx SpecContext) {
		data := newData("profile")

		profile := create(ctx, "profile", data)

		expectFields(profile, "id", "name", "preferences", "radiusMiles", "userId", "createdAt", "updatedAt")
		Expect(profile["name"]).To(Equal(data["name"]))
		Expect(profile["radiusMiles"]).To(BeEquivalentTo(data["radiusMiles"]))
		expectTimestamps(profile)
	})

	DescribeTable("creates profile variations",
		func(ctx SpecContext, name string, radius int) {
			profile := create(ctx, "profile", with(newData("profile"), map[string]any{"name": name, "radiusMiles": radius}))

			Expect(profile["name"]).To(Equal(name))
			Expect(profile["radiusMiles"]).To(BeEquivalentTo(radius))
		},
		Entry("small radius", "Local", 1),
		Entry("wide radius", "Regional", 100),
	)

	It("lists profiles", func(ctx SpecContext) {
		resp, err := client.List(ctx, "profile")
		Expect(err).NotTo(HaveOccurred())
		expectEnvelope(resp, envelope.OpList)
	})

	It("rejects a negative radius", func(ctx SpecContext) {
		resp, err := client.Create(ctx, "profile", with(newData("profile"), map[string]any{"radiusMiles": -10}))
		Expect(err).NotTo(HaveOccurred())
		expectRejected(resp, 422)
	})

	It("runs the whole CRUD workflow", func(ctx SpecContext) {
		crudWorkflow(ctx, "profile", newData("profile"), map[string]any{"name": "Updated Profile", "radiusMiles": 50})
	})
})
