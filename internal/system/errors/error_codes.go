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

const errorPrefix = "REC-"

var (
	// Fatal error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to connect to the document store.",
	}

	INVALID_CONFIG = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Invalid reconciler configuration.",
	}

	LIST_COLLECTIONS = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while listing collections.",
	}

	LOCK_ACQUIRE = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Reconciliation lock acquisition failed.",
	}

	LOCK_RELEASE = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while releasing the reconciliation lock.",
	}

	WRITE_REPORT = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while writing the report file.",
	}

	// Recoverable operation error codes

	AMBIGUOUS_GROUP = ErrorMessage{
		Code:        errorPrefix + "11001",
		Message:     "Ambiguous canonical selection.",
		Description: "Every selection criterion tied; the group needs a human naming decision.",
	}

	RENAME_CONFLICT = ErrorMessage{
		Code:        errorPrefix + "11002",
		Message:     "Rename target already exists.",
		Description: "The target collection appeared after planning; the group was left untouched.",
	}

	COPY_DOCUMENT = ErrorMessage{
		Code:    errorPrefix + "11003",
		Message: "Error while copying a document into the canonical collection.",
	}

	COUNT_DOCUMENTS = ErrorMessage{
		Code:    errorPrefix + "11004",
		Message: "Error while counting documents.",
	}

	DROP_COLLECTION = ErrorMessage{
		Code:    errorPrefix + "11005",
		Message: "Error while dropping a collection.",
	}

	RENAME_COLLECTION = ErrorMessage{
		Code:    errorPrefix + "11006",
		Message: "Error while renaming a collection.",
	}

	SOURCE_MISSING = ErrorMessage{
		Code:        errorPrefix + "11007",
		Message:     "Merge source no longer exists.",
		Description: "The collection disappeared between planning and apply.",
	}

	CANONICAL_MISSING = ErrorMessage{
		Code:        errorPrefix + "11008",
		Message:     "Canonical collection no longer exists.",
		Description: "The canonical target disappeared between planning and apply.",
	}

	DELETE_DOCUMENT = ErrorMessage{
		Code:        errorPrefix + "11009",
		Message:     "Error while removing a copied document from the merge source.",
		Description: "The document now exists in both collections and needs manual cleanup.",
	}
)
