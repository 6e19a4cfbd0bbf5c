// Package kl implements the untwisted Kazhdan-Lusztig-Vogan engine of
// spec.md §4.5: row-by-row recursive computation of the polynomials
// P_{x,y}, their mu-coefficients, and hash-consed storage in a klpol.Store.
//
// KLPol and Mu answer for a row once Fill has written it (earlier rows
// fail with ErrNotFilled); rows are filled in strictly ascending block-index order (which spec.md §3
// guarantees is ascending length order), since row y consults every
// previously filled row through klPol(·, sy) and mu-row lookups.
package kl
