/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package errors

import "fmt"

type ErrorMessage struct {
	Code        string `json:"error_code"`
	Message     string `json:"error_message"`
	Description string `json:"error_description,omitempty"`
}

// OperationError marks a recoverable failure scoped to a single group or
// document. The run continues; the final summary reports it.
type OperationError struct {
	ErrorMessage
	Err error
}

// FatalError aborts the run before any further mutation and carries the
// process exit code.
type FatalError struct {
	ErrorMessage
	ExitCode int
	Err      error
}

func (e *OperationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func (e *FatalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

func NewOperationError(msg ErrorMessage, cause error) *OperationError {
	return &OperationError{
		ErrorMessage: msg,
		Err:          cause,
	}
}

func NewFatalError(msg ErrorMessage, exitCode int, cause error) *FatalError {
	return &FatalError{
		ErrorMessage: msg,
		ExitCode:     exitCode,
		Err:          cause,
	}
}
