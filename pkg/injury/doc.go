// Package injury implements the NCAP injury risk curves. Each curve converts
// one crash-test measurement into the probability of a serious injury to a
// body region. See [Curves] for the published constants.
package injury
