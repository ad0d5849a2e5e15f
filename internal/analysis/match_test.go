package analysis_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/BadPackage/receipt-analyzer/internal/analysis"
)

var _ = Describe("Similarity", func() {
	It("should score identical keys as 1", func() {
		Expect(analysis.Similarity("milkwhole", "milkwhole")).To(Equal(1.0))
	})

	It("should score a single-character OCR dropout highly", func() {
		// "milkwhole" vs "milkwhle": one deletion over nine characters.
		Expect(analysis.Similarity("milkwhole", "milkwhle")).To(BeNumerically("~", 8.0/9.0, 1e-9))
	})

	It("should score disjoint keys near 0", func() {
		Expect(analysis.Similarity("milkwhole", "xyz")).To(BeNumerically("<", 0.2))
	})

	It("should score a key against the empty string as 0", func() {
		Expect(analysis.Similarity("milk", "")).To(BeZero())
	})
})

var _ = Describe("Matcher", func() {
	var (
		matcher  *analysis.Matcher
		products []*analysis.Product
		key      string
		match    *analysis.Product
		ok       bool
	)

	BeforeEach(func() {
		matcher = analysis.NewMatcher(0.80)
		products = nil
	})

	JustBeforeEach(func() {
		match, ok = matcher.Match(key, products)
	})

	When("there are no products yet", func() {
		BeforeEach(func() {
			key = "milkwhole"
		})

		It("should not match", func() {
			Expect(ok).To(BeFalse())
		})
	})

	When("an exact key exists", func() {
		BeforeEach(func() {
			key = "milkwhole"
			products = []*analysis.Product{
				{Name: "bread wheat", Key: "breadwheat"},
				{Name: "milk whole", Key: "milkwhole"},
			}
		})

		It("should match it", func() {
			Expect(ok).To(BeTrue())
			Expect(match.Name).To(Equal("milk whole"))
		})
	})

	When("the best candidate sits exactly at the threshold", func() {
		BeforeEach(func() {
			// Distance 2 over length 10: similarity exactly 0.80.
			key = strings.Repeat("a", 10)
			products = []*analysis.Product{
				{Name: "boundary", Key: strings.Repeat("a", 8) + "bb"},
			}
		})

		It("should match", func() {
			Expect(ok).To(BeTrue())
			Expect(match.Name).To(Equal("boundary"))
		})
	})

	When("the best candidate is just below the threshold", func() {
		BeforeEach(func() {
			// Distance 21 over length 100: similarity exactly 0.79.
			key = strings.Repeat("a", 100)
			products = []*analysis.Product{
				{Name: "near miss", Key: strings.Repeat("a", 79) + strings.Repeat("b", 21)},
			}
		})

		It("should not match", func() {
			Expect(ok).To(BeFalse())
		})
	})

	When("two candidates tie on the top score", func() {
		BeforeEach(func() {
			key = "abcdefghij"
			products = []*analysis.Product{
				{Name: "first", Key: "abcdefghix"},
				{Name: "second", Key: "abcdefghiy"},
			}
		})

		It("should prefer the earliest-created product", func() {
			Expect(ok).To(BeTrue())
			Expect(match.Name).To(Equal("first"))
		})
	})

	When("a closer candidate appears after a looser one", func() {
		BeforeEach(func() {
			key = "milkwhole"
			products = []*analysis.Product{
				{Name: "close", Key: "milkwhle"},
				{Name: "exact", Key: "milkwhole"},
			}
		})

		It("should pick the highest score", func() {
			Expect(ok).To(BeTrue())
			Expect(match.Name).To(Equal("exact"))
		})
	})

	When("the key is empty", func() {
		BeforeEach(func() {
			key = ""
			products = []*analysis.Product{
				{Name: "milk whole", Key: "milkwhole"},
			}
		})

		It("should never match", func() {
			Expect(ok).To(BeFalse())
		})
	})
})
