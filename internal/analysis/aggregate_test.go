package analysis_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/BadPackage/receipt-analyzer/internal/analysis"
)

var _ = Describe("Aggregator", func() {
	var aggregator *analysis.Aggregator

	BeforeEach(func() {
		aggregator = analysis.NewAggregator(analysis.NewMatcher(0.80))
	})

	When("ingesting a brand-new item", func() {
		BeforeEach(func() {
			err := aggregator.Ingest(analysis.ParsedItem{RawName: "milk whole", PriceCents: 399, Receipt: "r1"})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should create a product with the raw name as canonical", func() {
			rep := aggregator.Report()
			Expect(rep.Products).To(HaveLen(1))
			Expect(rep.Products[0].Name).To(Equal("milk whole"))
			Expect(rep.Products[0].TotalCents).To(Equal(int64(399)))
			Expect(rep.Products[0].Count).To(Equal(1))
		})
	})

	When("ingesting an OCR variant of a known product", func() {
		BeforeEach(func() {
			Expect(aggregator.Ingest(analysis.ParsedItem{RawName: "milk whole", PriceCents: 399, Receipt: "r1"})).To(Succeed())
			Expect(aggregator.Ingest(analysis.ParsedItem{RawName: "milk whle", PriceCents: 498, Receipt: "r2"})).To(Succeed())
		})

		It("should merge into the existing product", func() {
			rep := aggregator.Report()
			Expect(rep.Products).To(HaveLen(1))
		})

		It("should keep the first-seen name", func() {
			Expect(aggregator.Report().Products[0].Name).To(Equal("milk whole"))
		})

		It("should sum prices exactly and count occurrences", func() {
			p := aggregator.Report().Products[0]
			Expect(p.TotalCents).To(Equal(int64(897)))
			Expect(p.Count).To(Equal(2))
		})
	})

	When("ingesting one cent a thousand times", func() {
		BeforeEach(func() {
			for i := 0; i < 1000; i++ {
				Expect(aggregator.Ingest(analysis.ParsedItem{RawName: "gum", PriceCents: 1, Receipt: "r1"})).To(Succeed())
			}
		})

		It("should sum without any drift", func() {
			rep := aggregator.Report()
			Expect(rep.Products).To(HaveLen(1))
			Expect(rep.Products[0].TotalCents).To(Equal(int64(1000)))
			Expect(rep.GrandTotalCents).To(Equal(int64(1000)))
		})
	})

	When("the name normalizes to nothing", func() {
		BeforeEach(func() {
			Expect(aggregator.Ingest(analysis.ParsedItem{RawName: "---", PriceCents: 100, Receipt: "r1"})).To(Succeed())
		})

		It("should drop the item", func() {
			Expect(aggregator.Report().Products).To(BeEmpty())
		})
	})

	When("an item carries a non-positive price", func() {
		It("should surface an internal consistency error", func() {
			err := aggregator.Ingest(analysis.ParsedItem{RawName: "ghost", PriceCents: 0, Receipt: "r1"})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Report", func() {
		BeforeEach(func() {
			Expect(aggregator.Ingest(analysis.ParsedItem{RawName: "bread wheat", PriceCents: 249, Receipt: "r1"})).To(Succeed())
			Expect(aggregator.Ingest(analysis.ParsedItem{RawName: "eggs large", PriceCents: 499, Receipt: "r1"})).To(Succeed())
			Expect(aggregator.Ingest(analysis.ParsedItem{RawName: "milk whole", PriceCents: 897, Receipt: "r1"})).To(Succeed())
			// Same total as eggs, later name: sorts after by name.
			Expect(aggregator.Ingest(analysis.ParsedItem{RawName: "ham sliced", PriceCents: 499, Receipt: "r1"})).To(Succeed())
		})

		It("should sort by total descending, ties by name ascending", func() {
			rep := aggregator.Report()
			names := make([]string, 0, len(rep.Products))
			for _, p := range rep.Products {
				names = append(names, p.Name)
			}
			Expect(names).To(Equal([]string{"milk whole", "eggs large", "ham sliced", "bread wheat"}))
		})

		It("should compute the exact grand total and unique count", func() {
			rep := aggregator.Report()
			Expect(rep.GrandTotalCents).To(Equal(int64(2144)))
			Expect(rep.UniqueProducts).To(Equal(4))
		})

		It("should be idempotent", func() {
			first := aggregator.Report()
			second := aggregator.Report()
			Expect(second).To(Equal(first))
		})
	})

	When("the aggregator is empty", func() {
		It("should report an empty product list and a zero total", func() {
			rep := aggregator.Report()
			Expect(rep.Products).To(BeEmpty())
			Expect(rep.GrandTotalCents).To(BeZero())
			Expect(rep.UniqueProducts).To(BeZero())
		})
	})
})
