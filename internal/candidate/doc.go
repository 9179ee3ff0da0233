// Package candidate enumerates password candidates from a base wordlist.
//
// Every candidate is a base word with exactly one character uppercased, one
// symbol inserted and one digit inserted. The enumeration order is fixed:
//
//	for each word in wordlist order
//	  for each position i, uppercase only word[i]
//	    for each symbol, for each insertion position j in 0..len
//	      for each digit, for each insertion position k in 0..len
//	        yield
//
// Candidates are produced lazily through iter.Seq, so a full dictionary never
// has to fit in memory, and the size of the space has a closed form that can
// be computed without enumerating it (see Count and CountWord).
package candidate
