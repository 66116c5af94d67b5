package indexing

import (
	"github.com/gcbaptista/termindex/internal/tokenizer"
	"github.com/gcbaptista/termindex/model"
)

const (
	page1 = "http://cit594.ericfouh.com/page1.html"
	page2 = "http://cit594.ericfouh.com/page2.html"
	page3 = "http://cit594.ericfouh.com/page3.html"
	page4 = "http://cit594.ericfouh.com/page4.html"
	page5 = "http://cit594.ericfouh.com/page5.html"
)

// sampleCorpus is a small five-page feed: three pages about data structures,
// one unrelated page and one about the others.
func sampleCorpus() model.Corpus {
	pages := map[string]string{
		page1: "data structures: linear data structures Lists: arraylist, linkedlist, stacks, queues",
		page2: "data structures: linear data structures Lists: arraylist, linkedlist, stacks, queues " +
			"Binary trees are very efficient at managing large collections. Trees can be used to compress files. " +
			"binary search trees are sorted data structures (total order) binary heaps are partially ordered " +
			"data structures Implementing an order on the data allows for faster storage, search and retrieval.",
		page3: "when working with binary trees, you can implement a natural order (on the data) or pass a comparator object. " +
			"treeset and tree map in Java use red-black trees, a type of self-balancing trees.",
		page4: "This file has nothing to do with the others. maybe I should paste a poem by Mallarme here. What do you think?",
		page5: "Let's see how this categorization will work. three files talked about CIT594 topics and one is completely random.",
	}

	corpus := make(model.Corpus, len(pages))
	for id, text := range pages {
		corpus[id] = tokenizer.Tokenize(text)
	}
	return corpus
}

var sampleStopwords = []string{
	"a", "an", "and", "are", "as", "at", "be", "by", "for", "from", "has", "have", "he", "i", "in",
	"is", "it", "its", "of", "on", "or", "that", "the", "this", "to", "was", "were", "will", "with",
	"you", "do", "what", "how", "let", "lets", "should", "here", "about", "one", "can",
}
