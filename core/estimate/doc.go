// Package estimate implements the closed-form EV estimators: driving range,
// battery state of health, charging cost, regenerative braking recovery and
// used vehicle price.
//
// Estimators are plain values without state. Each validates its input and
// returns an *InvalidInputError when a field is not finite, lies outside its
// domain or names an unknown category. No output is produced in that case.
package estimate
