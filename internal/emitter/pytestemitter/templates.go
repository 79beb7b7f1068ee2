package pytestemitter

const suiteTemplate = `import pytest
import requests
import json
from unittest.mock import patch, MagicMock

# Base URL for testing - replace with your test server URL
BASE_URL = "http://localhost:5000"


# Test fixtures
@pytest.fixture
def api_client():
    """Create a test client for the API"""
    class TestClient:
        def __init__(self, base_url):
            self.base_url = base_url
            self.session = requests.Session()

        def get_headers(self):
            return {"Content-Type": "application/json"}

    return TestClient(BASE_URL)

{{range .Cases}}
# Positive test cases for {{.Verb}} {{.Endpoint}}
class {{.ClassName}}Positive:
    def test_{{.FuncName}}_success(self, api_client):
        """Test successful {{.Verb}} request to {{.Endpoint}}"""
{{.PositiveBody}}

# Negative test cases for {{.Verb}} {{.Endpoint}}
class {{.ClassName}}Negative:
    def test_{{.FuncName}}_error(self, api_client):
        """Test error handling for {{.Verb}} request to {{.Endpoint}}"""
{{.NegativeBody}}
{{end -}}
`

const getByIDTemplate = `        # Mock response data
        mock_response = {
            "id": 123,
            "name": "Test Item",
            "description": "This is a test item"
        }

        with patch('requests.Session.get') as mock_get:
            mock_response_obj = MagicMock()
            mock_response_obj.status_code = 200
            mock_response_obj.json.return_value = mock_response
            mock_get.return_value = mock_response_obj

            response = api_client.session.get(
                f"{api_client.base_url}{{.TestPath}}",
                headers=api_client.get_headers()
            )

            assert response.status_code == 200
            data = response.json()
            assert data["id"] == 123
            assert "name" in data
            assert "description" in data`

const getCollectionTemplate = `        # Mock response data
        mock_response = [
            {
                "id": 1,
                "name": "Test Item 1",
                "description": "This is test item 1"
            },
            {
                "id": 2,
                "name": "Test Item 2",
                "description": "This is test item 2"
            }
        ]

        with patch('requests.Session.get') as mock_get:
            mock_response_obj = MagicMock()
            mock_response_obj.status_code = 200
            mock_response_obj.json.return_value = mock_response
            mock_get.return_value = mock_response_obj

            response = api_client.session.get(
                f"{api_client.base_url}{{.Path}}",
                headers=api_client.get_headers()
            )

            assert response.status_code == 200
            data = response.json()
            assert isinstance(data, list)
            assert len(data) > 0
            assert "id" in data[0]
            assert "name" in data[0]`

const postTemplate = `        # Request data
        request_data = {{.SampleJSON}}

        # Mock response data (usually includes an ID)
        mock_response = {
            "id": 123,
            **request_data
        }

        with patch('requests.Session.post') as mock_post:
            mock_response_obj = MagicMock()
            mock_response_obj.status_code = 201
            mock_response_obj.json.return_value = mock_response
            mock_post.return_value = mock_response_obj

            response = api_client.session.post(
                f"{api_client.base_url}{{.Path}}",
                headers=api_client.get_headers(),
                json=request_data
            )

            assert response.status_code == 201
            data = response.json()
            assert "id" in data
            for key, value in request_data.items():
                assert data[key] == value`

const putTemplate = `        # Request data
        request_data = {{.SampleJSON}}

        # Mock response data
        mock_response = {
            "id": 123,
            **request_data
        }

        with patch('requests.Session.put') as mock_put:
            mock_response_obj = MagicMock()
            mock_response_obj.status_code = 200
            mock_response_obj.json.return_value = mock_response
            mock_put.return_value = mock_response_obj

            response = api_client.session.put(
                f"{api_client.base_url}{{.TestPath}}",
                headers=api_client.get_headers(),
                json=request_data
            )

            assert response.status_code == 200
            data = response.json()
            assert data["id"] == 123
            for key, value in request_data.items():
                assert data[key] == value`

const deleteTemplate = `        # Mock response data
        mock_response = {
            "message": "Resource deleted successfully"
        }

        with patch('requests.Session.delete') as mock_delete:
            mock_response_obj = MagicMock()
            mock_response_obj.status_code = 200
            mock_response_obj.json.return_value = mock_response
            mock_delete.return_value = mock_response_obj

            response = api_client.session.delete(
                f"{api_client.base_url}{{.TestPath}}",
                headers=api_client.get_headers()
            )

            assert response.status_code == 200
            data = response.json()
            assert "message" in data`

const patchTemplate = `        # Request data (partial update)
        request_data = {{.PatchJSON}}

        # Mock response data
        mock_response = {
            "id": 123,
            **request_data
        }

        with patch('requests.Session.patch') as mock_patch:
            mock_response_obj = MagicMock()
            mock_response_obj.status_code = 200
            mock_response_obj.json.return_value = mock_response
            mock_patch.return_value = mock_response_obj

            response = api_client.session.patch(
                f"{api_client.base_url}{{.TestPath}}",
                headers=api_client.get_headers(),
                json=request_data
            )

            assert response.status_code == 200
            data = response.json()
            assert data["id"] == 123
            for key, value in request_data.items():
                assert data[key] == value`

const getNotFoundTemplate = `        # Mock a 404 response
        with patch('requests.Session.get') as mock_get:
            mock_response = MagicMock()
            mock_response.status_code = 404
            mock_response.json.return_value = {"error": "Resource not found"}
            mock_get.return_value = mock_response

            response = api_client.session.get(
                f"{api_client.base_url}{{.MissPath}}",
                headers=api_client.get_headers()
            )

            assert response.status_code == 404
            data = response.json()
            assert "error" in data`

const getBadQueryTemplate = `        # Mock a 400 response for invalid query parameters
        with patch('requests.Session.get') as mock_get:
            mock_response = MagicMock()
            mock_response.status_code = 400
            mock_response.json.return_value = {"error": "Invalid query parameters"}
            mock_get.return_value = mock_response

            response = api_client.session.get(
                f"{api_client.base_url}{{.Path}}",
                headers=api_client.get_headers(),
                params={"invalid_param": "invalid_value"}
            )

            assert response.status_code == 400
            data = response.json()
            assert "error" in data`

const validationTemplate = `        # Mock a 422 validation error response
        with patch('requests.Session.{{.Verb}}') as mock_method:
            mock_response = MagicMock()
            mock_response.status_code = 422
            mock_response.json.return_value = {
                "error": "Validation error",
                "messages": {"field": ["Field is required"]}
            }
            mock_method.return_value = mock_response

            response = api_client.session.{{.Verb}}(
                f"{api_client.base_url}{{.Path}}",
                headers=api_client.get_headers(),
                json={}  # Empty data to trigger validation error
            )

            assert response.status_code == 422
            data = response.json()
            assert "error" in data
            assert "messages" in data`

const deleteNotFoundTemplate = `        # Mock a 404 response
        with patch('requests.Session.delete') as mock_delete:
            mock_response = MagicMock()
            mock_response.status_code = 404
            mock_response.json.return_value = {"error": "Resource not found"}
            mock_delete.return_value = mock_response

            response = api_client.session.delete(
                f"{api_client.base_url}{{.MissPath}}",
                headers=api_client.get_headers()
            )

            assert response.status_code == 404
            data = response.json()
            assert "error" in data`
