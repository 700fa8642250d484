// Package config provides configuration structures and utilities for
// clinreport. It defines the build options collected from CLI flags, their
// validation, and the optional report-profile file holding laboratory
// boilerplate that is not stored in the annotation database.
package config
