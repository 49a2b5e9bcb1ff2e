package services

import (
	"github.com/ochairo/variants/internal/domain/entities"
)

// resolveSplitABIs applies reset/include/exclude and returns the effective ABI set in
// canonical order. Unknown identifiers are reported even when splitting is disabled.
func resolveSplitABIs(p entities.AbiSplitPolicy) ([]string, []error) {
	var errs []error
	for _, abi := range p.Include {
		if !entities.IsSupportedABI(abi) {
			errs = append(errs, &entities.UnsupportedArchitectureError{ABI: abi, Field: "splits.abi.include"})
		}
	}
	for _, abi := range p.Exclude {
		if !entities.IsSupportedABI(abi) {
			errs = append(errs, &entities.UnsupportedArchitectureError{ABI: abi, Field: "splits.abi.exclude"})
		}
	}
	if !p.Enable || len(errs) > 0 {
		return nil, errs
	}

	selected := make(map[string]bool)
	if !p.Reset {
		for _, abi := range entities.SupportedABIs {
			selected[abi] = true
		}
	}
	for _, abi := range p.Include {
		selected[abi] = true
	}
	for _, abi := range p.Exclude {
		delete(selected, abi)
	}

	abis := make([]string, 0, len(selected))
	for _, abi := range entities.SupportedABIs {
		if selected[abi] {
			abis = append(abis, abi)
		}
	}

	if len(abis) == 0 {
		return nil, []error{&entities.ValidationError{
			Field:  "splits.abi",
			Reason: "splitting is enabled but no architectures are selected",
		}}
	}
	return abis, nil
}

// packagingUnits lists the APKs the packaging tool produces for one build type
func packagingUnits(module string, bt entities.ResolvedBuildType, p entities.AbiSplitPolicy, abis []string, versionCode int) []entities.PackagingUnit {
	suffix := bt.Name
	if bt.Signing == nil {
		suffix += "-unsigned"
	}

	if !p.Enable {
		return []entities.PackagingUnit{{
			Universal:   true,
			FileName:    module + "-" + suffix + ".apk",
			VersionCode: versionCode,
		}}
	}

	units := make([]entities.PackagingUnit, 0, len(abis)+1)
	for _, abi := range abis {
		units = append(units, entities.PackagingUnit{
			ABI:         abi,
			FileName:    module + "-" + abi + "-" + suffix + ".apk",
			VersionCode: versionCode,
		})
	}
	if p.UniversalApk {
		units = append(units, entities.PackagingUnit{
			Universal:   true,
			FileName:    module + "-universal-" + suffix + ".apk",
			VersionCode: versionCode,
		})
	}
	return units
}
