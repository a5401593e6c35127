// Copyright 2025 The ts-observing-environment Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resolver

import (
	"fmt"

	"github.com/tribeiro/ts-observing-environment/internal/errors"
)

//nolint:gochecknoinits
func init() {
	AddErrorResolver(&obsEnvErrorResolver{})
}

// obsEnvErrorResolver produces end-user messages for the typed errors
// raised by the orchestration layer. The git resolver runs first, so
// anything reaching this resolver carries no git execution detail.
type obsEnvErrorResolver struct{}

func (*obsEnvErrorResolver) Resolve(err error) (ResolvedResult, bool) {
	var obsEnvErr *errors.Error
	if !errors.As(err, &obsEnvErr) {
		return ResolvedResult{}, false
	}

	kindErr := firstClassified(obsEnvErr)
	if kindErr == nil {
		return ResolvedResult{}, false
	}

	var msg string
	switch kindErr.Kind {
	case errors.UnknownRepo:
		msg = fmt.Sprintf("Error: Repository %q is not part of the observing environment.", kindErr.Repo)
		msg += fmt.Sprintf("\nRun %q to list the managed repositories.", "manage_obs_env config")

	case errors.MissingParam, errors.InvalidParam:
		msg = fmt.Sprintf("Error: %v", obsEnvErr)

	case errors.IO:
		msg = fmt.Sprintf("Error: Unable to access %q: %v", kindErr.Path, obsEnvErr)

	case errors.Resolver:
		msg = fmt.Sprintf("Error: Unable to resolve the base environment versions: %v", obsEnvErr)

	default:
		return ResolvedResult{}, false
	}
	return ResolvedResult{
		Message: msg,
	}, true
}

// firstClassified returns the outermost error in the chain that carries a
// kind other than errors.Other, or nil when the whole chain is unclassified.
func firstClassified(err *errors.Error) *errors.Error {
	for err != nil {
		if err.Kind != errors.Other {
			return err
		}
		next, ok := err.Err.(*errors.Error)
		if !ok {
			return nil
		}
		err = next
	}
	return nil
}
